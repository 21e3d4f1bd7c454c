// Package importer reconciles CSV exports of a legacy deployment into the
// live schema: tasks, AI history, profile fields and settings fields, with
// legacy identifiers preserved where supplied and rows re-associated to
// local users.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// Options configures one import run. All CSV paths are optional, but at
// least one must be given.
type Options struct {
	TasksCSV    string
	HistoryCSV  string
	ProfilesCSV string
	SettingsCSV string
	// UserColumn names the CSV column used for user matching; when empty an
	// ordered fallback list is auto-detected per row.
	UserColumn string
	// UserField is the local user column used for lookups (default: email).
	UserField string
	Encoding  string
	DryRun    bool
}

// Importer runs CSV reconciliation against the live database.
type Importer struct {
	db  *gorm.DB
	log *zap.Logger
	out io.Writer
}

// New creates an importer writing operator output to out.
func New(db *gorm.DB, log *zap.Logger, out io.Writer) *Importer {
	return &Importer{db: db, log: log, out: out}
}

// run bundles the transaction-scoped state of one import invocation.
type run struct {
	tasks    repository.TaskRepository
	history  repository.HistoryRepository
	profiles repository.ProfileRepository
	resolver *userResolver
	log      *zap.Logger
	// pendingProfiles merges partial field updates per user across the
	// profiles and user_settings datasets; flushed once at the end so a
	// user present in both exports gets a single write.
	pendingProfiles map[uint]map[string]string
}

// Run executes the import inside a single transaction. In dry-run mode all
// work is performed and then rolled back; the summaries still reflect what
// the run did.
func (imp *Importer) Run(ctx context.Context, opts Options) ([]*Summary, error) {
	if opts.UserField == "" {
		opts.UserField = "email"
	}

	paths := []struct{ dataset, path string }{
		{"tasks", opts.TasksCSV},
		{"ai_history", opts.HistoryCSV},
		{"profiles", opts.ProfilesCSV},
		{"user_settings", opts.SettingsCSV},
	}
	any := false
	for _, p := range paths {
		if p.path == "" {
			continue
		}
		any = true
		if _, err := os.Stat(p.path); err != nil {
			return nil, fmt.Errorf("%s CSV not found: %s", p.dataset, p.path)
		}
	}
	if !any {
		return nil, errors.New("provide at least one CSV path (tasks, ai-history, profiles, user-settings)")
	}

	if opts.DryRun {
		fmt.Fprintln(imp.out, "Dry run enabled - no changes will be committed.")
	} else {
		fmt.Fprintln(imp.out, "Starting import.")
	}

	tx := imp.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer tx.Rollback() // no-op after an explicit commit or rollback

	r := &run{
		tasks:           repository.NewTaskRepository(tx),
		history:         repository.NewHistoryRepository(tx),
		profiles:        repository.NewProfileRepository(tx),
		resolver:        newUserResolver(repository.NewUserRepository(tx), opts.UserField, opts.UserColumn, imp.log),
		log:             imp.log,
		pendingProfiles: make(map[uint]map[string]string),
	}

	var summaries []*Summary
	appendDataset := func(dataset, path string, fn func(context.Context, string, string) (*Summary, error)) error {
		if path == "" {
			return nil
		}
		summary, err := fn(ctx, path, opts.Encoding)
		if err != nil {
			return fmt.Errorf("import %s: %w", dataset, err)
		}
		summaries = append(summaries, summary)
		return nil
	}

	runErr := appendDataset("tasks", opts.TasksCSV, r.importTasks)
	if runErr == nil {
		runErr = appendDataset("ai_history", opts.HistoryCSV, r.importHistory)
	}
	if runErr == nil {
		runErr = appendDataset("profiles", opts.ProfilesCSV, r.importProfiles)
	}
	if runErr == nil {
		runErr = appendDataset("user_settings", opts.SettingsCSV, r.importSettings)
	}
	if runErr == nil && len(r.pendingProfiles) > 0 {
		summary, err := r.flushProfiles(ctx)
		if err != nil {
			runErr = fmt.Errorf("flush profiles: %w", err)
		} else {
			summaries = append(summaries, summary)
		}
	}

	if runErr != nil {
		tx.Rollback()
		return nil, runErr
	}

	// Explicit commit-versus-discard decision once all work is done.
	if opts.DryRun {
		fmt.Fprintln(imp.out, "Dry run complete. Rolling back staged changes.")
		if err := tx.Rollback().Error; err != nil {
			return nil, fmt.Errorf("rollback: %w", err)
		}
	} else {
		if err := tx.Commit().Error; err != nil {
			return nil, fmt.Errorf("commit: %w", err)
		}
	}

	fmt.Fprintln(imp.out, "")
	fmt.Fprintln(imp.out, "Import summary")
	for _, summary := range summaries {
		fmt.Fprintf(imp.out, " - %s\n", summary.Message())
	}
	return summaries, nil
}

func parseLegacyID(value string) uint {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return 0
	}
	return uint(n)
}

func (r *run) importTasks(ctx context.Context, path, encoding string) (*Summary, error) {
	rows, err := readRows(path, encoding)
	if err != nil {
		return nil, err
	}
	summary := newSummary("tasks", path, len(rows))

	for _, row := range rows {
		summary.Processed++
		user := r.resolver.resolve(ctx, row, summary)
		if user == nil {
			continue
		}

		legacyID := parseLegacyID(row["id"])
		task := &model.Task{UserID: user.ID}
		cols := []string{"user_id"}
		var createdAt, updatedAt *time.Time

		if v := strings.TrimSpace(row["title"]); v != "" {
			task.Title = v
			cols = append(cols, "title")
		}
		if v := row["description"]; strings.TrimSpace(v) != "" {
			task.Description = v
			cols = append(cols, "description")
		}
		if v := strings.TrimSpace(row["due_date"]); v != "" {
			if due, err := model.ParseDate(v); err == nil {
				task.DueDate = &due
				cols = append(cols, "due_date")
			}
		}
		if v := strings.TrimSpace(row["priority"]); v != "" {
			if priority, ok := model.ParsePriority(v); ok {
				task.Priority = priority
				cols = append(cols, "priority")
			}
		}
		if v := strings.TrimSpace(row["status"]); v != "" {
			if status, ok := model.ParseStatus(v); ok {
				task.Status = status
				cols = append(cols, "status")
			}
		}
		if v := strings.TrimSpace(row["created_at"]); v != "" {
			if t, err := model.ParseDateTime(v); err == nil {
				createdAt = &t
			}
		}
		if v := strings.TrimSpace(row["updated_at"]); v != "" {
			if t, err := model.ParseDateTime(v); err == nil {
				updatedAt = &t
			}
		}

		if task.Title == "" {
			r.log.Warn("skipping task row without title", zap.Uint("legacy_id", legacyID))
			summary.Skipped++
			continue
		}
		task.ID = legacyID

		created, err := r.tasks.Upsert(ctx, task, cols)
		if err != nil {
			summary.Errors++
			r.log.Error("failed to import task row", zap.Uint("legacy_id", legacyID), zap.Error(err))
			continue
		}
		if created {
			summary.Created++
		} else {
			summary.Updated++
		}

		// Auto-managed timestamps would clobber imported history; overwrite
		// them with a direct column update after the upsert.
		if err := r.tasks.OverrideTimestamps(ctx, task.ID, createdAt, updatedAt); err != nil {
			summary.Errors++
			r.log.Error("failed to restore task timestamps", zap.Uint("id", task.ID), zap.Error(err))
		}
	}

	if total, err := r.tasks.Count(ctx); err == nil {
		summary.FinalTotal = &total
	}
	return summary, nil
}

func (r *run) importHistory(ctx context.Context, path, encoding string) (*Summary, error) {
	rows, err := readRows(path, encoding)
	if err != nil {
		return nil, err
	}
	summary := newSummary("ai_history", path, len(rows))

	for _, row := range rows {
		summary.Processed++
		user := r.resolver.resolve(ctx, row, summary)
		if user == nil {
			continue
		}

		legacyID := parseLegacyID(row["id"])

		// The exports spell the prompt column three different ways.
		query := row["query"]
		if query == "" {
			query = row["prompt"]
		}
		if query == "" {
			query = row["request"]
		}
		title := strings.TrimSpace(row["title"])
		if title == "" {
			title = query
			if runes := []rune(title); len(runes) > 60 {
				title = string(runes[:60])
			}
			if title == "" {
				title = "Conversation"
			}
		}

		entry := &model.AIHistory{
			ID:       legacyID,
			UserID:   user.ID,
			Title:    title,
			Query:    query,
			Response: row["response"],
		}
		cols := []string{"user_id", "title", "query", "response"}

		var createdAt *time.Time
		if v := strings.TrimSpace(row["created_at"]); v != "" {
			if t, err := model.ParseDateTime(v); err == nil {
				createdAt = &t
			}
		}

		created, err := r.history.Upsert(ctx, entry, cols)
		if err != nil {
			summary.Errors++
			r.log.Error("failed to import history row", zap.Uint("legacy_id", legacyID), zap.Error(err))
			continue
		}
		if created {
			summary.Created++
		} else {
			summary.Updated++
		}

		if createdAt != nil {
			if err := r.history.OverrideCreatedAt(ctx, entry.ID, *createdAt); err != nil {
				summary.Errors++
				r.log.Error("failed to restore history timestamp", zap.Uint("id", entry.ID), zap.Error(err))
			}
		}
	}

	if total, err := r.history.Count(ctx); err == nil {
		summary.FinalTotal = &total
	}
	return summary, nil
}

// columnAlias maps an accepted source column to its canonical target field.
// Later entries overwrite earlier ones when both columns are present.
type columnAlias struct {
	source string
	target string
}

var profileColumnAliases = []columnAlias{
	{"name", "name"},
	{"full_name", "name"},
	{"display_name", "name"},
	{"avatar_url", "avatar_url"},
	{"avatar", "avatar_url"},
	{"theme", "theme"},
	{"language", "language"},
	{"ai_response_style", "ai_response_style"},
	{"ai_style", "ai_response_style"},
}

var settingsColumnAliases = []columnAlias{
	{"theme", "theme"},
	{"language", "language"},
	{"ai_response_style", "ai_response_style"},
	{"ai_style", "ai_response_style"},
}

func (r *run) importProfiles(ctx context.Context, path, encoding string) (*Summary, error) {
	rows, err := readRows(path, encoding)
	if err != nil {
		return nil, err
	}
	summary := newSummary("profiles", path, len(rows))

	for _, row := range rows {
		summary.Processed++
		user := r.resolver.resolve(ctx, row, summary)
		if user == nil {
			continue
		}

		pending := r.pending(user.ID)
		for _, alias := range profileColumnAliases {
			if v, ok := row[alias.source]; ok && v != "" {
				pending[alias.target] = v
			}
		}
		if legacyID := parseLegacyID(row["id"]); legacyID != 0 {
			pending["id"] = strconv.FormatUint(uint64(legacyID), 10)
		}
	}

	if total, err := r.profiles.Count(ctx); err == nil {
		summary.FinalTotal = &total
	}
	return summary, nil
}

func (r *run) importSettings(ctx context.Context, path, encoding string) (*Summary, error) {
	rows, err := readRows(path, encoding)
	if err != nil {
		return nil, err
	}
	summary := newSummary("user_settings", path, len(rows))

	for _, row := range rows {
		summary.Processed++
		user := r.resolver.resolve(ctx, row, summary)
		if user == nil {
			continue
		}

		pending := r.pending(user.ID)
		for _, alias := range settingsColumnAliases {
			if v, ok := row[alias.source]; ok && v != "" {
				pending[alias.target] = v
			}
		}
	}

	if total, err := r.profiles.Count(ctx); err == nil {
		summary.FinalTotal = &total
	}
	return summary, nil
}

func (r *run) pending(userID uint) map[string]string {
	pending, ok := r.pendingProfiles[userID]
	if !ok {
		pending = make(map[string]string)
		r.pendingProfiles[userID] = pending
	}
	return pending
}

// flushProfiles writes the accumulated per-user profile fields: one
// get-or-create plus at most one save per user, regardless of how many
// source rows mentioned them.
func (r *run) flushProfiles(ctx context.Context) (*Summary, error) {
	summary := newSummary("profiles/save", "<aggregated>", len(r.pendingProfiles))

	for userID, pending := range r.pendingProfiles {
		summary.Processed++

		profile, created, err := r.getOrCreateProfile(ctx, userID)
		if err != nil {
			summary.Errors++
			r.log.Error("failed to load profile", zap.Uint("user_id", userID), zap.Error(err))
			continue
		}

		if desired := parseLegacyID(pending["id"]); desired != 0 && profile.ID != desired {
			reassigned, err := r.profiles.ReassignID(ctx, profile.ID, desired)
			if err != nil {
				summary.Errors++
				r.log.Error("failed to reassign profile id",
					zap.Uint("user_id", userID), zap.Uint("desired_id", desired), zap.Error(err))
				continue
			}
			profile = reassigned
		}

		var cols []string
		if v, ok := pending["name"]; ok && profile.Name != v {
			profile.Name = v
			cols = append(cols, "name")
		}
		if v, ok := pending["avatar_url"]; ok && profile.AvatarURL != v {
			profile.AvatarURL = v
			cols = append(cols, "avatar_url")
		}
		if v, ok := pending["theme"]; ok && string(profile.Theme) != v {
			profile.Theme = model.Theme(v)
			cols = append(cols, "theme")
		}
		if v, ok := pending["language"]; ok && profile.Language != v {
			profile.Language = v
			cols = append(cols, "language")
		}
		if v, ok := pending["ai_response_style"]; ok && string(profile.AIResponseStyle) != v {
			profile.AIResponseStyle = model.AIResponseStyle(v)
			cols = append(cols, "ai_response_style")
		}

		switch {
		case len(cols) > 0:
			if err := r.profiles.SaveFields(ctx, profile, cols); err != nil {
				summary.Errors++
				r.log.Error("failed to update profile", zap.Uint("user_id", userID), zap.Error(err))
				continue
			}
			if created {
				summary.Created++
			} else {
				summary.Updated++
			}
		case created:
			summary.Created++
		default:
			summary.Skipped++
		}
	}

	if total, err := r.profiles.Count(ctx); err == nil {
		summary.FinalTotal = &total
	}
	return summary, nil
}

func (r *run) getOrCreateProfile(ctx context.Context, userID uint) (*model.Profile, bool, error) {
	profile, err := r.profiles.FindByUser(ctx, userID)
	if err == nil {
		return profile, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	profile = model.DefaultProfile(userID)
	if err := r.profiles.Create(ctx, profile); err != nil {
		return nil, false, err
	}
	return profile, true, nil
}
