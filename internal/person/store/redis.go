package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"personreg/internal/person/models"
	"personreg/pkg/platform/sentinel"
)

const (
	redisNextIDKey = "persons:next_id"
	redisEmailsKey = "persons:emails"

	// txRetries bounds optimistic retries when a WATCHed key changes.
	txRetries = 5
)

// Redis persists person records in Redis as a durable backing store (not a
// cache): one hash per person, an email→id index hash for the uniqueness
// claim, and an INCR counter for monotonic ID assignment.
type Redis struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed person store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func redisPersonKey(id int64) string {
	return fmt.Sprintf("person:%d", id)
}

func (s *Redis) List(ctx context.Context) ([]models.Person, error) {
	// The email index holds exactly the live person IDs.
	index, err := s.client.HGetAll(ctx, redisEmailsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list person index: %w", err)
	}

	ids := make([]int64, 0, len(index))
	for _, raw := range index {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt person index entry %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	persons := make([]models.Person, 0, len(ids))
	for _, id := range ids {
		p, err := s.FindByID(ctx, id)
		if errors.Is(err, sentinel.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		persons = append(persons, *p)
	}
	return persons, nil
}

func (s *Redis) FindByID(ctx context.Context, id int64) (*models.Person, error) {
	fields, err := s.client.HGetAll(ctx, redisPersonKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("find person %d: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return personFromHash(id, fields)
}

// createScript claims the email and writes the person hash in one atomic
// step, so a failure can never leave an email claimed with no person behind
// it. Returns 0 when the email is already taken.
var createScript = redis.NewScript(`
if redis.call("HEXISTS", KEYS[1], ARGV[1]) == 1 then
	return 0
end
redis.call("HSET", KEYS[1], ARGV[1], ARGV[2])
redis.call("HSET", KEYS[2], "name", ARGV[3], "age", ARGV[4], "email", ARGV[1])
return 1
`)

func (s *Redis) Create(ctx context.Context, p *models.Person) error {
	// Reserve the ID first: the counter never runs backwards, so a failed
	// claim burns the value instead of reusing it, which the contract allows.
	id, err := s.client.Incr(ctx, redisNextIDKey).Result()
	if err != nil {
		return fmt.Errorf("reserve person id: %w", err)
	}

	claimed, err := createScript.Run(ctx, s.client,
		[]string{redisEmailsKey, redisPersonKey(id)},
		p.Email, id, p.Name, p.Age).Int()
	if err != nil {
		return fmt.Errorf("store person %d: %w", id, err)
	}
	if claimed == 0 {
		return sentinel.ErrConflict
	}

	p.ID = id
	return nil
}

func (s *Redis) Update(ctx context.Context, id int64, patch models.Patch) (*models.Person, error) {
	var updated *models.Person
	key := redisPersonKey(id)

	txn := func(tx *redis.Tx) error {
		fields, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("read person %d: %w", id, err)
		}
		if len(fields) == 0 {
			return sentinel.ErrNotFound
		}
		p, err := personFromHash(id, fields)
		if err != nil {
			return err
		}

		oldEmail := p.Email
		if patch.Email != nil && *patch.Email != oldEmail {
			taken, err := tx.HExists(ctx, redisEmailsKey, *patch.Email).Result()
			if err != nil {
				return fmt.Errorf("check email: %w", err)
			}
			if taken {
				return sentinel.ErrConflict
			}
		}

		patch.Apply(p)

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if p.Email != oldEmail {
				pipe.HDel(ctx, redisEmailsKey, oldEmail)
				pipe.HSet(ctx, redisEmailsKey, p.Email, id)
			}
			pipe.HSet(ctx, key, "name", p.Name, "age", p.Age, "email", p.Email)
			return nil
		})
		if err != nil {
			return err
		}
		updated = p
		return nil
	}

	for i := 0; i < txRetries; i++ {
		err := s.client.Watch(ctx, txn, key, redisEmailsKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, fmt.Errorf("update person %d: %w", id, redis.TxFailedErr)
}

func (s *Redis) Delete(ctx context.Context, id int64) error {
	key := redisPersonKey(id)

	txn := func(tx *redis.Tx) error {
		email, err := tx.HGet(ctx, key, "email").Result()
		if errors.Is(err, redis.Nil) {
			return sentinel.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("read person %d: %w", id, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, redisEmailsKey, email)
			pipe.Del(ctx, key)
			return nil
		})
		return err
	}

	for i := 0; i < txRetries; i++ {
		err := s.client.Watch(ctx, txn, key, redisEmailsKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("delete person %d: %w", id, redis.TxFailedErr)
}

func (s *Redis) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return sentinel.ErrUnavailable
	}
	return nil
}

func personFromHash(id int64, fields map[string]string) (*models.Person, error) {
	age, err := strconv.Atoi(fields["age"])
	if err != nil {
		return nil, fmt.Errorf("corrupt age for person %d: %w", id, err)
	}
	return &models.Person{
		ID:    id,
		Name:  fields["name"],
		Age:   age,
		Email: fields["email"],
	}, nil
}
