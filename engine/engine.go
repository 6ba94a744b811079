package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jghoshh/virtuo-push/lib/timeutil"
	"github.com/jghoshh/virtuo-push/models"
	"github.com/jghoshh/virtuo-push/push"
	"github.com/jghoshh/virtuo-push/storage"
)

// Options carries the tunables of the reminder engine.
type Options struct {
	// DigestTime is the local wall-clock "HH:mm" at which the daily digest
	// fires for every user.
	DigestTime string
	// AppURL is the link attached to every notification payload.
	AppURL string
	// Workers bounds how many users are processed concurrently per tick.
	Workers int
}

// Engine evaluates, once per polling tick, which notifications are due for
// every user and every non-archived habit, dispatches them, and purges push
// tokens the transport reports as permanently invalid.
type Engine struct {
	store  storage.StorageInterface
	sender push.Sender
	log    *zap.Logger
	opts   Options
	now    func() time.Time
}

// New creates an Engine. Zero or negative Workers falls back to serial
// processing; an unset DigestTime defaults to 16:00.
func New(store storage.StorageInterface, sender push.Sender, log *zap.Logger, opts Options) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.DigestTime == "" {
		opts.DigestTime = "16:00"
	}
	return &Engine{
		store:  store,
		sender: sender,
		log:    log,
		opts:   opts,
		now:    time.Now,
	}
}

// Tick performs one evaluation pass over all users. Users are processed
// independently under a bounded worker group; a failure in one user's
// processing is logged and never aborts the others. The only fatal error is
// being unable to list users at all.
func (e *Engine) Tick(ctx context.Context) error {
	log := e.log.With(zap.String("run_id", uuid.NewString()))

	users, err := e.store.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("error listing users: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)

	for _, user := range users {
		user := user
		g.Go(func() error {
			if err := e.processUser(ctx, log, user); err != nil {
				log.Error("user processing failed",
					zap.String("user_id", user.ID.Hex()),
					zap.Error(err),
				)
			}
			// Always nil: per-user failures must not cancel the group.
			return nil
		})
	}

	return g.Wait()
}

// processUser runs the full evaluate/dispatch/cleanup sequence for one user.
func (e *Engine) processUser(ctx context.Context, log *zap.Logger, user models.User) error {
	now := e.now()
	tz := timeutil.ValidateTimezone(user.Timezone)
	nowHM := timeutil.LocalClock(now, tz)
	weekday := timeutil.ISOWeekday(now, tz)

	habits, err := e.store.FindActiveHabits(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("error loading habits: %w", err)
	}

	var due []models.Habit
	for _, h := range habits {
		if h.DueOn(weekday) {
			due = append(due, h)
		}
	}

	// Nothing due today means nothing to say, not even a digest.
	if len(due) == 0 {
		return nil
	}

	registered, err := e.store.ListPushTokens(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("error loading push tokens: %w", err)
	}
	if len(registered) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(registered))
	for _, t := range registered {
		tokens = append(tokens, t.Token)
	}

	if nowHM == e.opts.DigestTime {
		msg := push.Message{
			Title: "Habits due today",
			Body:  digestBody(len(due)),
			URL:   e.opts.AppURL,
		}
		if err := e.sendToUser(ctx, log, user.ID, tokens, msg); err != nil {
			log.Error("digest dispatch failed",
				zap.String("user_id", user.ID.Hex()),
				zap.Error(err),
			)
		}
	}

	// Each due habit is evaluated independently against its own effective
	// zone, so several reminders may fire in the same tick.
	for _, h := range due {
		if !h.HasExactReminder() {
			continue
		}
		htz := timeutil.ValidateTimezone(h.EffectiveTimezone(user.Timezone))
		if timeutil.LocalClock(now, htz) != h.Reminder.Time {
			continue
		}
		msg := push.Message{
			Title: "Habit reminder",
			Body:  "Time for: " + h.Name,
			URL:   e.opts.AppURL,
		}
		if err := e.sendToUser(ctx, log, user.ID, tokens, msg); err != nil {
			log.Error("reminder dispatch failed",
				zap.String("user_id", user.ID.Hex()),
				zap.String("habit_id", h.ID.Hex()),
				zap.Error(err),
			)
		}
	}

	return nil
}

// sendToUser dispatches one message to all of the user's tokens and purges
// the tokens the transport reported as permanently invalid. The cleanup
// consumes exactly the invalid set of the dispatch that precedes it.
func (e *Engine) sendToUser(ctx context.Context, log *zap.Logger, userID interface{}, tokens []string, msg push.Message) error {
	result, err := push.Dispatch(ctx, e.sender, tokens, msg)
	if err != nil {
		return err
	}

	log.Info("notification dispatched",
		zap.Int("success", result.SuccessCount),
		zap.Int("failure", result.FailureCount),
		zap.Int("invalid", len(result.InvalidTokens)),
	)

	if len(result.InvalidTokens) == 0 {
		return nil
	}

	deleted, err := e.store.DeletePushTokens(ctx, userID, result.InvalidTokens)
	if err != nil {
		return fmt.Errorf("error purging invalid tokens: %w", err)
	}

	log.Info("invalid tokens purged", zap.Int64("deleted", deleted.DeletedCount))
	return nil
}

// digestBody phrases the daily digest for n due habits.
func digestBody(n int) string {
	if n == 1 {
		return "You have 1 habit due today."
	}
	return fmt.Sprintf("You have %d habits due today.", n)
}
