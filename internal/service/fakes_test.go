package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"ai-renamer-be/internal/entity"
	"ai-renamer-be/internal/repository/contract"
	"ai-renamer-be/internal/repository/specification"
	"ai-renamer-be/internal/repository/unitofwork"
	"ai-renamer-be/pkg/events"

	"github.com/google/uuid"
)

// fakeDB backs every repository with maps. Specifications are interpreted
// by type, the same filters the gorm implementations turn into SQL.
type fakeDB struct {
	mu       sync.Mutex
	clock    time.Time
	users    map[uuid.UUID]entity.User
	settings map[uuid.UUID]entity.UserSettings
	keys     map[uuid.UUID]entity.ApiKey
	prompts  map[uuid.UUID]entity.Prompt
	records  []entity.RenameRecord
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:    make(map[uuid.UUID]entity.User),
		settings: make(map[uuid.UUID]entity.UserSettings),
		keys:     make(map[uuid.UUID]entity.ApiKey),
		prompts:  make(map[uuid.UUID]entity.Prompt),
	}
}

// tick hands out strictly increasing timestamps so ordering is stable.
func (db *fakeDB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

func (db *fakeDB) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUoW{db: db}
}

var _ unitofwork.RepositoryFactory = (*fakeDB)(nil)

type fakeUoW struct{ db *fakeDB }

func (u *fakeUoW) Begin(ctx context.Context) error { return nil }
func (u *fakeUoW) Commit() error                   { return nil }
func (u *fakeUoW) Rollback() error                 { return nil }

func (u *fakeUoW) UserRepository() contract.UserRepository { return fakeUsers{u.db} }
func (u *fakeUoW) SettingsRepository() contract.SettingsRepository {
	return fakeSettings{u.db}
}
func (u *fakeUoW) ApiKeyRepository() contract.ApiKeyRepository { return fakeKeys{u.db} }
func (u *fakeUoW) PromptRepository() contract.PromptRepository { return fakePrompts{u.db} }
func (u *fakeUoW) RenameRecordRepository() contract.RenameRecordRepository {
	return fakeRecords{u.db}
}

type filter struct {
	id       *uuid.UUID
	owner    *uuid.UUID
	email    string
	keyName  *string
	prompt   *string
	folder   *string
	limit    int
	offset   int
	paginate bool
}

func parseSpecs(specs []specification.Specification) filter {
	var f filter
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			f.id = &v.ID
		case specification.UserOwnedBy:
			f.owner = &v.UserID
		case specification.ByEmail:
			f.email = strings.ToLower(v.Email)
		case specification.ByKeyName:
			f.keyName = &v.Name
		case specification.ByPromptName:
			f.prompt = &v.Name
		case specification.ByFolder:
			f.folder = &v.Folder
		case specification.Pagination:
			f.limit, f.offset, f.paginate = v.Limit, v.Offset, true
		default:
			panic("fakeDB: unsupported specification")
		}
	}
	return f
}

type fakeUsers struct{ db *fakeDB }

func (r fakeUsers) Create(ctx context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, user.Email) {
			return contract.ErrDuplicate
		}
	}
	user.CreatedAt = r.db.tick()
	user.UpdatedAt = user.CreatedAt
	r.db.users[user.Id] = *user
	return nil
}

func (r fakeUsers) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	f := parseSpecs(specs)
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if f.id != nil && u.Id != *f.id {
			continue
		}
		if f.email != "" && strings.ToLower(u.Email) != f.email {
			continue
		}
		u := u
		return &u, nil
	}
	return nil, nil
}

type fakeSettings struct{ db *fakeDB }

func (r fakeSettings) FindByUser(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.settings[userId]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r fakeSettings) Upsert(ctx context.Context, settings *entity.UserSettings) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	settings.UpdatedAt = r.db.tick()
	r.db.settings[settings.UserId] = *settings
	return nil
}

type fakeKeys struct{ db *fakeDB }

func (r fakeKeys) Create(ctx context.Context, key *entity.ApiKey) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	key.CreatedAt = r.db.tick()
	key.UpdatedAt = key.CreatedAt
	r.db.keys[key.Id] = *key
	return nil
}

func (r fakeKeys) Update(ctx context.Context, key *entity.ApiKey) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	key.UpdatedAt = r.db.tick()
	r.db.keys[key.Id] = *key
	return nil
}

func (r fakeKeys) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.keys, id)
	return nil
}

func (r fakeKeys) match(f filter, k entity.ApiKey) bool {
	return (f.id == nil || k.Id == *f.id) &&
		(f.owner == nil || k.UserId == *f.owner) &&
		(f.keyName == nil || k.KeyName == *f.keyName)
}

func (r fakeKeys) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ApiKey, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r fakeKeys) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ApiKey, error) {
	f := parseSpecs(specs)
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*entity.ApiKey, 0)
	for _, k := range r.db.keys {
		if r.match(f, k) {
			k := k
			out = append(out, &k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type fakePrompts struct{ db *fakeDB }

func (r fakePrompts) Create(ctx context.Context, p *entity.Prompt) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p.CreatedAt = r.db.tick()
	p.UpdatedAt = p.CreatedAt
	r.db.prompts[p.Id] = *p
	return nil
}

func (r fakePrompts) Update(ctx context.Context, p *entity.Prompt) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p.UpdatedAt = r.db.tick()
	r.db.prompts[p.Id] = *p
	return nil
}

func (r fakePrompts) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.prompts, id)
	return nil
}

func (r fakePrompts) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Prompt, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r fakePrompts) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Prompt, error) {
	f := parseSpecs(specs)
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*entity.Prompt, 0)
	for _, p := range r.db.prompts {
		if (f.id == nil || p.Id == *f.id) &&
			(f.owner == nil || p.UserId == *f.owner) &&
			(f.prompt == nil || p.PromptName == *f.prompt) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type fakeRecords struct{ db *fakeDB }

func (r fakeRecords) Create(ctx context.Context, rec *entity.RenameRecord) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rec.CreatedAt = r.db.tick()
	r.db.records = append(r.db.records, *rec)
	return nil
}

func (r fakeRecords) filtered(f filter) []*entity.RenameRecord {
	out := make([]*entity.RenameRecord, 0)
	for i := len(r.db.records) - 1; i >= 0; i-- {
		rec := r.db.records[i]
		if (f.owner == nil || rec.UserId == *f.owner) && (f.folder == nil || rec.Folder == *f.folder) {
			out = append(out, &rec)
		}
	}
	return out
}

func (r fakeRecords) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RenameRecord, error) {
	f := parseSpecs(specs)
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := r.filtered(f)
	if f.paginate {
		if f.offset >= len(out) {
			return []*entity.RenameRecord{}, nil
		}
		out = out[f.offset:]
		if len(out) > f.limit {
			out = out[:f.limit]
		}
	}
	return out, nil
}

func (r fakeRecords) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	f := parseSpecs(specs)
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.filtered(f))), nil
}

// recordingEvents captures published domain events.
type recordingEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingEvents) Publish(ctx context.Context, ev events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recordingEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType())
	}
	return out
}

// recordingDelivery captures messages meant for websocket clients.
type delivered struct {
	UserID uuid.UUID
	Type   string
	Data   interface{}
}

type recordingDelivery struct {
	mu   sync.Mutex
	msgs []delivered
}

func (r *recordingDelivery) Send(userID uuid.UUID, msgType string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, delivered{UserID: userID, Type: msgType, Data: data})
}

func (r *recordingDelivery) ofType(msgType string) []delivered {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []delivered
	for _, m := range r.msgs {
		if m.Type == msgType {
			out = append(out, m)
		}
	}
	return out
}
