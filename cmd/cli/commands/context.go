package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rswalker/academy-scheduler/internal/config"
	"github.com/rswalker/academy-scheduler/pkg/core/model"
	"github.com/rswalker/academy-scheduler/pkg/directory"
	"github.com/rswalker/academy-scheduler/pkg/store"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg       *config.Config
	Store     store.ShiftStore
	Directory directory.Provider
	Logger    *zap.Logger
	Ctx       context.Context
	OrgID     string
}

// FindStaff looks up a staff member in the organization's directory
func (app *AppContext) FindStaff(staffID string) (*model.Staff, error) {
	staff, err := app.Directory.ListStaff(app.OrgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	for i := range staff {
		if staff[i].ID == staffID {
			return &staff[i], nil
		}
	}
	return nil, fmt.Errorf("staff member %s not found in organization %s", staffID, app.OrgID)
}

// parseDay parses a YYYY-MM-DD argument in the configured timezone
func (app *AppContext) parseDay(arg string) (time.Time, error) {
	loc, err := app.Cfg.Location()
	if err != nil {
		return time.Time{}, err
	}
	day, err := time.ParseInLocation("2006-01-02", arg, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected a YYYY-MM-DD date, got %q: %w", arg, err)
	}
	return day, nil
}
