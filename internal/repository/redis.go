package repository

import (
	"context"
	"time"

	"github.com/deppfellow/venues/internal/model"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	venueKeyPrefix = "venue:"
	venueIndexKey  = "venues:index"
	userKeyPrefix  = "user:"
)

// updateVenueScript rewrites an existing venue hash and reports 0 when the
// key is absent, so update never resurrects a deleted venue.
var updateVenueScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1], "name", ARGV[1], "url", ARGV[2], "district", ARGV[3])
return 1
`)

var deleteVenueScript = redis.NewScript(`
if redis.call("DEL", KEYS[1]) == 0 then
	return 0
end
redis.call("ZREM", KEYS[2], ARGV[1])
return 1
`)

var createUserScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return 0
end
redis.call("HSET", KEYS[1], "id", ARGV[1], "username", ARGV[2], "password_hash", ARGV[3], "created_at", ARGV[4])
return 1
`)

func venueKey(id model.ID) string {
	return venueKeyPrefix + id.String()
}

func userKey(username string) string {
	return userKeyPrefix + username
}

// RedisVenueStore keeps each venue in a hash and orders them with a sorted
// set scored by the millisecond timestamp embedded in the ULID.
type RedisVenueStore struct {
	client redis.UniversalClient
	ids    model.ULIDs
}

func NewRedisVenueStore(client redis.UniversalClient) *RedisVenueStore {
	return &RedisVenueStore{client: client}
}

func (r *RedisVenueStore) IDs() model.IDCodec {
	return r.ids
}

func (r *RedisVenueStore) List(ctx context.Context) ([]model.Venue, error) {
	members, err := r.client.ZRange(ctx, venueIndexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read venue index")
	}

	venues := make([]model.Venue, 0, len(members))
	if len(members) == 0 {
		return venues, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(members))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, member := range members {
			cmds[i] = pipe.HGetAll(ctx, venueKey(model.ID(member)))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read venue hashes")
	}

	for i, cmd := range cmds {
		fields := cmd.Val()
		// deleted between the index read and the pipeline
		if len(fields) == 0 {
			continue
		}
		venues = append(venues, model.Venue{
			ID:       model.ID(members[i]),
			Name:     fields["name"],
			URL:      fields["url"],
			District: fields["district"],
		})
	}
	return venues, nil
}

func (r *RedisVenueStore) Create(ctx context.Context, params model.VenueParams) (*model.Venue, error) {
	id := r.ids.New()
	ms, err := r.ids.Time(id)
	if err != nil {
		return nil, err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, venueKey(id), "name", params.Name, "url", params.URL, "district", params.District)
		pipe.ZAdd(ctx, venueIndexKey, redis.Z{Score: float64(ms), Member: id.String()})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store venue")
	}

	return &model.Venue{
		ID:       id,
		Name:     params.Name,
		URL:      params.URL,
		District: params.District,
	}, nil
}

func (r *RedisVenueStore) Update(ctx context.Context, id model.ID, params model.VenueParams) (*model.Venue, error) {
	updated, err := updateVenueScript.Run(ctx, r.client,
		[]string{venueKey(id)},
		params.Name, params.URL, params.District,
	).Int()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update venue id=%s", id)
	}

	if updated == 0 {
		return nil, ErrNotFound
	}

	return &model.Venue{
		ID:       id,
		Name:     params.Name,
		URL:      params.URL,
		District: params.District,
	}, nil
}

func (r *RedisVenueStore) Delete(ctx context.Context, id model.ID) error {
	deleted, err := deleteVenueScript.Run(ctx, r.client,
		[]string{venueKey(id), venueIndexKey},
		id.String(),
	).Int()
	if err != nil {
		return errors.Wrapf(err, "failed to delete venue id=%s", id)
	}

	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RedisVenueStore) Count(ctx context.Context) (int64, error) {
	count, err := r.client.ZCard(ctx, venueIndexKey).Result()
	if err != nil {
		return 0, errors.Wrap(err, "failed to count venues")
	}
	return count, nil
}

// RedisUserStore keeps one hash per username.
type RedisUserStore struct {
	client redis.UniversalClient
	ids    model.ULIDs
}

func NewRedisUserStore(client redis.UniversalClient) *RedisUserStore {
	return &RedisUserStore{client: client}
}

func (r *RedisUserStore) Create(ctx context.Context, username, passwordHash string) (*model.User, error) {
	user := &model.User{
		ID:           r.ids.New(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := createUserScript.Run(ctx, r.client,
		[]string{userKey(username)},
		user.ID.String(), user.Username, user.PasswordHash, user.CreatedAt.Format(time.RFC3339Nano),
	).Int()
	if err != nil {
		return nil, errors.Wrap(err, "failed to store user")
	}

	if created == 0 {
		return nil, ErrDuplicate
	}
	return user, nil
}

func (r *RedisUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	fields, err := r.client.HGetAll(ctx, userKey(username)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read user")
	}

	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, errors.Wrapf(err, "malformed created_at for user %q", username)
	}

	return &model.User{
		ID:           model.ID(fields["id"]),
		Username:     fields["username"],
		PasswordHash: fields["password_hash"],
		CreatedAt:    createdAt,
	}, nil
}
