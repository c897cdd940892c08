package services

import (
	"fmt"
	"log"
	"os"

	"github.com/rentfolio/tenantportal/internal/config"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Uploads      string            `json:"uploads"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check uploads directory
	if info, err := os.Stat(cfg.UploadsDir); err != nil || !info.IsDir() {
		result.Status = "unhealthy"
		result.Uploads = "missing"
		if err != nil {
			result.Details["uploads_error"] = err.Error()
		}
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Uploads directory unavailable: %s", cfg.UploadsDir)
		} else {
			result.ErrorMessage += fmt.Sprintf("; uploads directory unavailable: %s", cfg.UploadsDir)
		}
		log.Printf("Health check failed - uploads directory: %s", cfg.UploadsDir)
	} else {
		result.Uploads = "ok"
		result.Details["uploads_dir"] = cfg.UploadsDir
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
