package telemetry

const (
	MaxMessageSize                 = 100
	MetricMessageCount             = "es_in_metric_messages_count"
	ReadingsCount                  = "es_in_readings_count"
	MaxDeviceNameAndMetricNameSize = 25 + 35
	PredictionsCount               = "es_predictions_count"
	AnomaliesCount                 = "es_anomalies_count"
	AlertsCount                    = "es_alerts_count"
	MaintenanceDueCount            = "es_maintenance_due_count"
	AnalysisFailuresCount          = "es_analysis_failures_count"
	FleetAnalysisTime              = "es_fleet_analysis_time_ms"
	SensorsAnalyzedCount           = "es_sensors_analyzed_count"
)
