package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eldercare/internal/derive"
	"eldercare/internal/errs"
	"eldercare/internal/model"
	"eldercare/internal/repository"
	"eldercare/internal/storage"

	"github.com/gofrs/uuid/v5"
)

// maxLoginEvents caps the audit log; the oldest entries are evicted first.
const maxLoginEvents = 100

// UserDatabase persists user records and the login audit log as one record
// under a single key, read-modify-written inside each call.
type UserDatabase struct {
	kv    storage.KV
	clock repository.Clock
}

var _ repository.UserDatabase = (*UserDatabase)(nil)

// NewUserDatabase creates a UserDatabase over the given store.
func NewUserDatabase(kv storage.KV, clock repository.Clock) *UserDatabase {
	return &UserDatabase{kv: kv, clock: clock}
}

// rawUser is the persisted user shape across all historical schema
// versions. Early installations stored only username/password/names;
// role, permissions and timestamps arrived later and may be absent.
type rawUser struct {
	Username      string             `json:"username"`
	Password      string             `json:"password"`
	ElderName     string             `json:"elderName"`
	CaregiverName string             `json:"caregiverName,omitempty"`
	Role          model.Role         `json:"role,omitempty"`
	Permissions   []model.Permission `json:"permissions,omitempty"`
	CreatedAt     *time.Time         `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time         `json:"updatedAt,omitempty"`
}

type rawDatabase struct {
	Users       []rawUser          `json:"users"`
	LoginEvents []model.LoginEvent `json:"loginEvents"`
}

// migrateUser upgrades a persisted record of any historical shape to the
// current schema: missing role defaults to caregiver, missing or empty
// permissions come from the role table, missing timestamps become now.
// Applied on every read so old data needs no explicit migration step.
func migrateUser(raw rawUser, now time.Time) model.User {
	u := model.User{
		Username:      raw.Username,
		Password:      raw.Password,
		ElderName:     raw.ElderName,
		CaregiverName: raw.CaregiverName,
		Role:          raw.Role,
		Permissions:   raw.Permissions,
	}
	if u.Role == "" {
		u.Role = model.RoleCaregiver
	}
	if len(u.Permissions) == 0 {
		u.Permissions = model.PermissionsForRole(u.Role)
	}
	u.CreatedAt = now
	if raw.CreatedAt != nil {
		u.CreatedAt = *raw.CreatedAt
	}
	u.UpdatedAt = now
	if raw.UpdatedAt != nil {
		u.UpdatedAt = *raw.UpdatedAt
	}
	return u
}

func toRaw(u model.User) rawUser {
	created, updated := u.CreatedAt, u.UpdatedAt
	return rawUser{
		Username:      u.Username,
		Password:      u.Password,
		ElderName:     u.ElderName,
		CaregiverName: u.CaregiverName,
		Role:          u.Role,
		Permissions:   u.Permissions,
		CreatedAt:     &created,
		UpdatedAt:     &updated,
	}
}

func (d *UserDatabase) read(ctx context.Context) (rawDatabase, error) {
	raw, err := d.kv.Get(ctx, databaseKey)
	if errors.Is(err, errs.ErrNotFound) {
		return rawDatabase{}, nil
	}
	if err != nil {
		return rawDatabase{}, fmt.Errorf("reading user database: %w", err)
	}
	var db rawDatabase
	if json.Unmarshal(raw, &db) != nil {
		// unparsable database is treated as empty
		return rawDatabase{}, nil
	}
	return db, nil
}

func (d *UserDatabase) write(ctx context.Context, db rawDatabase) error {
	raw, err := json.Marshal(db)
	if err != nil {
		return fmt.Errorf("encoding user database: %w", err)
	}
	if err := d.kv.Set(ctx, databaseKey, raw); err != nil {
		return fmt.Errorf("writing user database: %w", err)
	}
	return nil
}

func (d *UserDatabase) UpsertFromProfile(ctx context.Context, p model.Profile) (model.Credentials, error) {
	creds := model.Credentials{
		Username: derive.Username(p.ElderName),
		Password: derive.Password(p.BirthDate),
	}

	db, err := d.read(ctx)
	if err != nil {
		return model.Credentials{}, err
	}

	now := d.clock.Now()
	user := model.User{
		Username:      creds.Username,
		Password:      creds.Password,
		ElderName:     p.ElderName,
		CaregiverName: p.CaregiverName,
		Role:          model.RoleCaregiver,
		Permissions:   model.PermissionsForRole(model.RoleCaregiver),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	replaced := false
	for i, raw := range db.Users {
		if raw.Username != creds.Username {
			continue
		}
		// same derived username: overwrite everything but the original
		// creation time
		user.CreatedAt = migrateUser(raw, now).CreatedAt
		db.Users[i] = toRaw(user)
		replaced = true
		break
	}
	if !replaced {
		db.Users = append(db.Users, toRaw(user))
	}

	if err := d.write(ctx, db); err != nil {
		return model.Credentials{}, err
	}
	return creds, nil
}

func (d *UserDatabase) EnsureDefaultUser(ctx context.Context, p model.Profile) error {
	db, err := d.read(ctx)
	if err != nil {
		return err
	}
	if len(db.Users) > 0 {
		return nil
	}
	_, err = d.UpsertFromProfile(ctx, p)
	return err
}

func (d *UserDatabase) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	db, err := d.read(ctx)
	if err != nil {
		return nil, err
	}
	now := d.clock.Now()
	for _, raw := range db.Users {
		if raw.Username == username {
			u := migrateUser(raw, now)
			return &u, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (d *UserDatabase) Users(ctx context.Context) ([]model.User, error) {
	db, err := d.read(ctx)
	if err != nil {
		return nil, err
	}
	now := d.clock.Now()
	users := make([]model.User, 0, len(db.Users))
	for _, raw := range db.Users {
		users = append(users, migrateUser(raw, now))
	}
	return users, nil
}

func (d *UserDatabase) AppendLoginEvent(ctx context.Context, username string, status model.LoginStatus) error {
	db, err := d.read(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("generating event id: %w", err)
	}
	db.LoginEvents = append(db.LoginEvents, model.LoginEvent{
		ID:        id.String(),
		Username:  username,
		Status:    status,
		Timestamp: d.clock.Now(),
	})
	if excess := len(db.LoginEvents) - maxLoginEvents; excess > 0 {
		db.LoginEvents = db.LoginEvents[excess:]
	}

	return d.write(ctx, db)
}

func (d *UserDatabase) LoginEvents(ctx context.Context) ([]model.LoginEvent, error) {
	db, err := d.read(ctx)
	if err != nil {
		return nil, err
	}
	return db.LoginEvents, nil
}
