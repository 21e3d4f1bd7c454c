package importer

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// userColumnFallbacks is the ordered list of CSV columns tried when the
// operator did not name one.
var userColumnFallbacks = []string{"user_email", "email", "user_id", "user_uuid", "user", "owner"}

type cacheKey struct {
	field string
	value string
}

// userResolver matches CSV rows to local users, memoizing lookups (including
// misses) for the duration of the run.
type userResolver struct {
	users  repository.UserRepository
	field  string
	column string
	log    *zap.Logger
	cache  map[cacheKey]*model.User
}

func newUserResolver(users repository.UserRepository, field, column string, log *zap.Logger) *userResolver {
	return &userResolver{
		users:  users,
		field:  field,
		column: column,
		log:    log,
		cache:  make(map[cacheKey]*model.User),
	}
}

// resolve finds the owning user for a row, updating the summary counters on
// every skip path. Returns nil when the row cannot be matched.
func (r *userResolver) resolve(ctx context.Context, row map[string]string, sum *Summary) *model.User {
	candidates := userColumnFallbacks
	if r.column != "" {
		candidates = append([]string{r.column}, userColumnFallbacks...)
	}

	var value string
	for _, key := range candidates {
		if v, ok := row[key]; ok && strings.TrimSpace(v) != "" {
			value = strings.TrimSpace(v)
			break
		}
	}
	if value == "" {
		sum.Skipped++
		sum.MissingUsers++
		return nil
	}

	key := cacheKey{field: r.field, value: value}
	if cached, ok := r.cache[key]; ok {
		if cached == nil {
			sum.Skipped++
			sum.MissingUsers++
		}
		return cached
	}

	lookup := interface{}(value)
	if strings.HasSuffix(r.field, "id") {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			sum.Errors++
			sum.Skipped++
			r.log.Error("cannot convert user lookup value to integer",
				zap.String("field", r.field), zap.String("value", value))
			r.cache[key] = nil
			return nil
		}
		lookup = parsed
	}

	user, err := r.users.FindOneByColumn(ctx, r.field, lookup)
	switch {
	case err == nil:
		r.cache[key] = user
		return user
	case errors.Is(err, gorm.ErrRecordNotFound):
		sum.MissingUsers++
		sum.Skipped++
		r.log.Warn("user not found; skipping row",
			zap.String("field", r.field), zap.String("value", value))
	case errors.Is(err, apperrors.ErrMultipleUsers):
		sum.Errors++
		sum.Skipped++
		r.log.Error("multiple users match; skipping row",
			zap.String("field", r.field), zap.String("value", value))
	default:
		sum.Errors++
		sum.Skipped++
		r.log.Error("user lookup failed",
			zap.String("field", r.field), zap.String("value", value), zap.Error(err))
	}
	r.cache[key] = nil
	return nil
}
