package migration

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-i2p/logger"
)

// Profile is the privilege level of a caller.
type Profile int

const (
	ProfileGuest Profile = iota
	ProfileRegisteredUser
	ProfileEditor
	ProfileReviewer
	ProfileUserAdmin
	ProfileAdministrator
)

func (p Profile) String() string {
	switch p {
	case ProfileGuest:
		return "Guest"
	case ProfileRegisteredUser:
		return "RegisteredUser"
	case ProfileEditor:
		return "Editor"
	case ProfileReviewer:
		return "Reviewer"
	case ProfileUserAdmin:
		return "UserAdmin"
	case ProfileAdministrator:
		return "Administrator"
	default:
		return "Unknown"
	}
}

// Status is the outcome of a trigger call.
type Status int

const (
	StatusCreated Status = iota
	StatusNotFound
	StatusFailed
	StatusForbidden
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusNotFound:
		return "not-found"
	case StatusFailed:
		return "failed"
	case StatusForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Result is what a caller gets back from Call.
type Result struct {
	Status  Status
	Message string
}

// Conner hands out dedicated database connections.
type Conner interface {
	Conn(ctx context.Context) (*sql.Conn, error)
}

// Trigger runs registered steps on behalf of administrators.
type Trigger struct {
	registry *Registry
	db       Conner
}

// NewTrigger returns a trigger running steps from registry against db.
func NewTrigger(registry *Registry, db Conner) *Trigger {
	return &Trigger{registry: registry, db: db}
}

// Call runs the step registered under name. It never panics: unknown steps,
// step errors and step panics are all reported through the Result.
func (t *Trigger) Call(ctx context.Context, profile Profile, name string) (res Result) {
	fields := logger.Fields{
		"at":      "(Trigger) Call",
		"step":    name,
		"profile": profile.String(),
	}
	if profile != ProfileAdministrator {
		log.WithFields(fields).Warn("migration step refused")
		return Result{Status: StatusForbidden, Message: fmt.Sprintf("Migration step %s requires the Administrator profile.", name)}
	}

	step, ok := t.registry.Lookup(name)
	if !ok {
		log.WithFields(fields).Warn("migration step not found")
		return Result{Status: StatusNotFound, Message: fmt.Sprintf("Migration step %s not found.", name)}
	}

	defer func() {
		if r := recover(); r != nil {
			fields["panic"] = fmt.Sprint(r)
			log.WithFields(fields).Error("migration step panicked")
			res = Result{Status: StatusFailed, Message: fmt.Sprintf("Error during migration step %s: %v", name, r)}
		}
	}()

	if err := t.run(ctx, step); err != nil {
		log.WithError(err).WithFields(fields).Error("migration step failed")
		return Result{Status: StatusFailed, Message: fmt.Sprintf("Error during migration step %s: %v", name, err)}
	}

	log.WithFields(fields).Info("migration step run successfully")
	return Result{Status: StatusCreated, Message: fmt.Sprintf("Migration step %s run successfully.", name)}
}

// Names lists the steps that can be called.
func (t *Trigger) Names() []string {
	return t.registry.Names()
}

func (t *Trigger) run(ctx context.Context, step Step) error {
	conn, err := t.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()
	return step.Update(ctx, conn)
}
