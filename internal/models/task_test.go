package models

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

// Task timestamps come from the lifecycle service's clock. If gorm tracked
// UpdatedAt itself, every Save would stamp wall-clock time over the value the
// service chose.
func TestTaskUpdatedAtIsApplicationManaged(t *testing.T) {
	parsed, err := schema.Parse(&Task{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("parsing task schema: %v", err)
	}

	field := parsed.LookUpField("UpdatedAt")
	if field == nil {
		t.Fatal("UpdatedAt field not found in task schema")
	}

	if field.AutoUpdateTime != 0 {
		t.Fatal("UpdatedAt must not be auto-tracked on save")
	}
}
