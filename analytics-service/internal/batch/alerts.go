/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package batch

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-uuid"

	"ecosense/common/dto"
)

const (
	EventTypeMaintenanceDue  = "MAINTENANCE_DUE"
	EventTypeAnomalyDetected = "ANOMALY_DETECTED"

	// one alert per sensor per prediction type within this window
	AlertDedupWindowSecs int64 = 3600
)

// AlertBuilder turns high-severity predictions into alert events. Dedup is
// done by the scheduler against Redis markers before publishing.
type AlertBuilder struct {
	nodeName string
}

func NewAlertBuilder(nodeName string) *AlertBuilder {
	return &AlertBuilder{nodeName: nodeName}
}

// BuildAlerts returns one event per alert-worthy prediction. Maintenance
// predictions alert at high or critical priority, anomaly predictions alert
// when at least one point is high severity.
func (b *AlertBuilder) BuildAlerts(predictions []dto.Prediction) []dto.EcoEvent {
	events := make([]dto.EcoEvent, 0)
	for _, prediction := range predictions {
		var event *dto.EcoEvent
		switch prediction.Type {
		case dto.PredictionTypeMaintenance:
			event = b.maintenanceAlert(prediction)
		case dto.PredictionTypeAnomaly:
			event = b.anomalyAlert(prediction)
		}
		if event != nil {
			events = append(events, *event)
		}
	}
	return events
}

func (b *AlertBuilder) maintenanceAlert(prediction dto.Prediction) *dto.EcoEvent {
	m := prediction.Maintenance
	if m == nil || !m.NeedsMaintenance {
		return nil
	}
	var severity string
	switch m.Priority {
	case dto.PriorityCritical:
		severity = dto.SEVERITY_CRITICAL
	case dto.PriorityHigh:
		severity = dto.SEVERITY_MAJOR
	default:
		return nil
	}
	event := b.newEvent(prediction, dto.EventClassEvent, EventTypeMaintenanceDue, severity)
	event.Name = fmt.Sprintf("Maintenance due for sensor %s", prediction.SensorId)
	event.Msg = fmt.Sprintf("Sensor %s needs maintenance within %d days (risk score %.2f)",
		prediction.SensorId, m.EstimatedDays, m.RiskScore)
	event.Priority = string(m.Priority)
	event.ActualValues = map[string]interface{}{
		"risk_score":     m.RiskScore,
		"estimated_days": m.EstimatedDays,
		"reasons":        m.Reasons,
	}
	return event
}

func (b *AlertBuilder) anomalyAlert(prediction dto.Prediction) *dto.EcoEvent {
	var worst *dto.AnomalyPoint
	for i := range prediction.Anomalies {
		point := &prediction.Anomalies[i]
		if point.Severity != dto.AnomalySeverityHigh {
			continue
		}
		if worst == nil || point.Score > worst.Score {
			worst = point
		}
	}
	if worst == nil {
		return nil
	}
	event := b.newEvent(prediction, dto.EventClassAnomaly, EventTypeAnomalyDetected, dto.SEVERITY_MAJOR)
	event.Name = fmt.Sprintf("Anomalous readings on sensor %s", prediction.SensorId)
	event.Msg = fmt.Sprintf("Sensor %s reported %.2f where %.2f was expected (score %.2f)",
		prediction.SensorId, worst.ActualValue, worst.ExpectedValue, worst.Score)
	event.ActualValues = map[string]interface{}{
		"actual_value":   worst.ActualValue,
		"expected_value": worst.ExpectedValue,
		"score":          worst.Score,
		"point_count":    len(prediction.Anomalies),
	}
	return event
}

func (b *AlertBuilder) newEvent(prediction dto.Prediction, class string, eventType string, severity string) *dto.EcoEvent {
	id, _ := uuid.GenerateUUID()
	correlationId := prediction.CorrelationId
	if correlationId == "" {
		correlationId, _ = uuid.GenerateUUID()
	}
	return &dto.EcoEvent{
		Id:            id,
		Class:         class,
		EventType:     eventType,
		SensorId:      prediction.SensorId,
		Severity:      severity,
		SourceNode:    b.nodeName,
		Status:        dto.EventStatusOpen,
		CorrelationId: correlationId,
		Created:       time.Now().UnixMilli(),
		IsNewEvent:    true,
	}
}
