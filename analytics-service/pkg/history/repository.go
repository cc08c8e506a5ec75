/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package history

import (
	"encoding/json"
	"os"

	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	_ "github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecosense/common/dto"
)

var dbSchema = "ecosense"

type HistoryRepositoryInterface interface {
	InitializeDB() error
	ArchivePredictions(predictions []dto.Prediction) error
	ArchiveAlert(event dto.EcoEvent) error
	GetPredictionHistory(sensorId string, predictionType string, from int64, to int64, limit int) ([]PredictionRecord, error)
	GetAlertHistory(sensorId string, limit int) ([]AlertRecord, error)
	PurgeOlderThan(cutoffMillis int64) (int64, error)
}

type HistoryRepository struct {
	appService   interfaces.ApplicationService
	dbConnection *gorm.DB
}

func NewHistoryRepository(appService interfaces.ApplicationService) *HistoryRepository {
	historyRepository := new(HistoryRepository)
	historyRepository.appService = appService
	historyRepository.dbConnection = getDbConnection(appService)
	return historyRepository
}

// NewHistoryRepositoryWithDb is for tests that bring their own connection
func NewHistoryRepositoryWithDb(appService interfaces.ApplicationService, db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{appService: appService, dbConnection: db}
}

func getDbConnection(service interfaces.ApplicationService) *gorm.DB {
	db, err := GetDbConnection(service)
	lc := service.LoggingClient()
	if err != nil {
		lc.Errorf("Database connection Error, exiting the service: %v\n", err)
		os.Exit(-1)
	}
	return db
}

// InitializeDB creates the schema if missing and migrates the history tables.
func (r *HistoryRepository) InitializeDB() error {
	lc := r.appService.LoggingClient()
	lc.Debugf("HistoryRepository.InitializeDB():: Start")
	db := r.dbConnection

	var schemaExists bool
	db.Raw("select exists (select schema_name FROM information_schema.schemata WHERE schema_name = '" + dbSchema + "');").Scan(&schemaExists)
	if !schemaExists {
		if ret := db.Exec("CREATE SCHEMA IF NOT EXISTS " + dbSchema); ret.Error != nil {
			lc.Errorf("Schema creation failed: %v", ret.Error)
			return ret.Error
		}
		lc.Infof("Database schema created: %s", dbSchema)
	} else {
		lc.Infof("DB schema already exists: %s", dbSchema)
	}

	if err := db.AutoMigrate(&PredictionRecord{}, &AlertRecord{}); err != nil {
		lc.Errorf("History table migration failed: %v", err)
		return err
	}
	lc.Debugf("HistoryRepository.InitializeDB():: End")
	return nil
}

// ArchivePredictions writes one row per prediction. Re-archiving the same run
// is a no-op per id.
func (r *HistoryRepository) ArchivePredictions(predictions []dto.Prediction) error {
	lc := r.appService.LoggingClient()
	if len(predictions) == 0 {
		return nil
	}
	records := make([]PredictionRecord, 0, len(predictions))
	for _, prediction := range predictions {
		payload, err := json.Marshal(prediction)
		if err != nil {
			lc.Errorf("Error serializing prediction %s for archive: %v", prediction.Id, err)
			continue
		}
		records = append(records, PredictionRecord{
			Id:            prediction.Id,
			Type:          string(prediction.Type),
			SensorId:      prediction.SensorId,
			Confidence:    prediction.Confidence,
			Payload:       string(payload),
			Created:       prediction.Created,
			ValidUntil:    prediction.ValidUntil,
			CorrelationId: prediction.CorrelationId,
		})
	}
	if len(records) == 0 {
		return nil
	}
	ret := r.dbConnection.Clauses(clause.OnConflict{DoNothing: true}).Create(&records)
	if ret.Error != nil {
		lc.Errorf("Error while archiving predictions to DB: %v", ret.Error)
		return ret.Error
	}
	return nil
}

func (r *HistoryRepository) ArchiveAlert(event dto.EcoEvent) error {
	lc := r.appService.LoggingClient()
	record := AlertRecord{
		Id:            event.Id,
		Class:         event.Class,
		EventType:     event.EventType,
		SensorId:      event.SensorId,
		Name:          event.Name,
		Msg:           event.Msg,
		Severity:      event.Severity,
		Status:        event.Status,
		CorrelationId: event.CorrelationId,
		Created:       event.Created,
	}
	ret := r.dbConnection.Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
	if ret.Error != nil {
		lc.Errorf("Error while archiving alert %s to DB: %v", event.Id, ret.Error)
		return ret.Error
	}
	return nil
}

// GetPredictionHistory returns archived predictions newest first. sensorId,
// predictionType and the time bounds are optional filters.
func (r *HistoryRepository) GetPredictionHistory(sensorId string, predictionType string, from int64, to int64, limit int) ([]PredictionRecord, error) {
	lc := r.appService.LoggingClient()
	if limit <= 0 {
		limit = 100
	}
	query := r.dbConnection.Model(&PredictionRecord{})
	if sensorId != "" {
		query = query.Where("sensor_id = ?", sensorId)
	}
	if predictionType != "" {
		query = query.Where("type = ?", predictionType)
	}
	if from > 0 {
		query = query.Where("created >= ?", from)
	}
	if to > 0 {
		query = query.Where("created <= ?", to)
	}
	var records []PredictionRecord
	ret := query.Order("created desc").Limit(limit).Find(&records)
	if ret.Error != nil {
		lc.Errorf("Error while fetching prediction history from DB: %v", ret.Error)
		return nil, ret.Error
	}
	return records, nil
}

func (r *HistoryRepository) GetAlertHistory(sensorId string, limit int) ([]AlertRecord, error) {
	lc := r.appService.LoggingClient()
	if limit <= 0 {
		limit = 100
	}
	query := r.dbConnection.Model(&AlertRecord{})
	if sensorId != "" {
		query = query.Where("sensor_id = ?", sensorId)
	}
	var records []AlertRecord
	ret := query.Order("created desc").Limit(limit).Find(&records)
	if ret.Error != nil {
		lc.Errorf("Error while fetching alert history from DB: %v", ret.Error)
		return nil, ret.Error
	}
	return records, nil
}

// PurgeOlderThan removes archived rows created before the cutoff and returns
// the number of rows deleted.
func (r *HistoryRepository) PurgeOlderThan(cutoffMillis int64) (int64, error) {
	lc := r.appService.LoggingClient()
	var deleted int64
	ret := r.dbConnection.Where("created < ?", cutoffMillis).Delete(&PredictionRecord{})
	if ret.Error != nil {
		lc.Errorf("Error while purging prediction history: %v", ret.Error)
		return 0, ret.Error
	}
	deleted += ret.RowsAffected
	ret = r.dbConnection.Where("created < ?", cutoffMillis).Delete(&AlertRecord{})
	if ret.Error != nil {
		lc.Errorf("Error while purging alert history: %v", ret.Error)
		return 0, ret.Error
	}
	deleted += ret.RowsAffected
	return deleted, nil
}
