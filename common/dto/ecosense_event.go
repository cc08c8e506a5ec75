/*******************************************************************************
* Contributors: BMC Software, Inc. - BMC Helix Edge
*
* (c) Copyright 2020-2025 BMC Software, Inc.
*******************************************************************************/

package dto

const BASE_EVENT_CLASS = "IOT_EVENT"

// CRITICAL, MAJOR, MINOR, WARNING, INFO, OK, UNKNOWN
const (
	SEVERITY_CRITICAL = "CRITICAL"
	SEVERITY_MAJOR    = "MAJOR"
	SEVERITY_MINOR    = "MINOR"
)

const (
	EventClassAnomaly = "ANOMALY"
	EventClassEvent   = "EVENT"

	EventStatusOpen   = "Open"
	EventStatusClosed = "Closed"
)

// EcoEvent is the alert record the service layer derives from a high-severity
// prediction. Dedup (one alert per sensor per type per hour) is done by the
// caller that creates these, never by the analytics engine.
type EcoEvent struct {
	Id             string                 `json:"id,omitempty"              codec:"id,omitempty"`
	Class          string                 `json:"class,omitempty"           codec:"class,omitempty"` // EVENT, ANOMALY
	EventType      string                 `json:"event_type,omitempty"      codec:"event_type,omitempty"`
	SensorId       string                 `json:"sensor_id,omitempty"       codec:"sensor_id,omitempty"`
	Name           string                 `json:"name,omitempty"            codec:"name,omitempty"`
	Msg            string                 `json:"msg,omitempty"             codec:"msg,omitempty"`
	Severity       string                 `json:"severity,omitempty"        codec:"severity,omitempty"`
	Priority       string                 `json:"priority,omitempty"        codec:"priority,omitempty"`
	SourceNode     string                 `json:"source_node,omitempty"     codec:"source_node,omitempty"`
	Status         string                 `json:"status,omitempty"          codec:"status,omitempty"`
	RelatedMetrics []string               `json:"related_metrics,omitempty" codec:"related_metrics,omitempty"`
	ActualValues   map[string]interface{} `json:"actual_values,omitempty"`
	Unit           string                 `json:"unit,omitempty"            codec:"unit,omitempty"`
	Location       string                 `json:"location,omitempty"        codec:"location,omitempty"`
	AdditionalData map[string]string      `json:"additional_data,omitempty" codec:"additional_data,omitempty" xml:"-"`
	CorrelationId  string                 `json:"correlation_id,omitempty"  codec:"correlation_id,omitempty"`
	Created        int64                  `json:"created,omitempty"         codec:"created,omitempty"`
	Modified       int64                  `json:"modified,omitempty"        codec:"modified,omitempty"`
	IsNewEvent     bool                   `json:"new_event"                 codec:"new_event"`
}
