package pda

import (
	"context"
	"crypto/ed25519"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/the-1ndex/mmm/cache"
	"github.com/the-1ndex/mmm/metrics"
	"github.com/the-1ndex/mmm/mmm/data/address"
	"github.com/the-1ndex/mmm/solana"
	"github.com/the-1ndex/mmm/solana/mmm"
)

const (
	metricsStructName = "pda.resolver"

	cacheHitMetricName  = "pda.cache.hit"
	cacheMissMetricName = "pda.cache.miss"

	addressRecordedEventName = "DerivedAddressRecorded"
)

var (
	ErrIndexDisabled = errors.New("address index is not configured")
)

// Result is a resolved entity address with the seeds that produced it
type Result struct {
	Program ed25519.PublicKey
	Kind    mmm.EntityKind
	Seeds   [][]byte
	Address ed25519.PublicKey
	Bump    uint8
}

// SignerSeeds returns the seeds followed by the bump
func (r *Result) SignerSeeds() [][]byte {
	return append(r.Seeds[:len(r.Seeds):len(r.Seeds)], []byte{r.Bump})
}

type cachedDerivation struct {
	address ed25519.PublicKey
	bump    uint8
}

// Resolver derives entity addresses, memoizing derivations by program and
// seeds and optionally recording every resolved entity into an address index.
// It is safe for concurrent use.
type Resolver struct {
	log  *zap.Logger
	conf *conf
	data address.Store

	derivations cache.Cache
}

// NewResolver returns a Resolver. data may be nil, which disables recording
// and index lookups.
func NewResolver(log *zap.Logger, data address.Store, configProvider ConfigProvider) *Resolver {
	conf := configProvider()
	return &Resolver{
		log:  log,
		conf: conf,
		data: data,

		derivations: cache.NewCache(int(conf.cacheSize.Get(context.Background()))),
	}
}

// Derive finds the canonical program address and bump for raw seeds
func (r *Resolver) Derive(ctx context.Context, program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Derive")
	defer tracer.End()

	derived, bump, err := r.derive(ctx, program, seeds...)
	if err != nil {
		tracer.OnError(err)
		return nil, 0, err
	}
	return derived, bump, nil
}

// Resolve builds the seeds for an entity and derives its address. When the
// address index is enabled, the result is recorded before returning.
func (r *Resolver) Resolve(ctx context.Context, program ed25519.PublicKey, kind mmm.EntityKind, ids mmm.Identifiers) (*Result, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Resolve")
	defer tracer.End()

	log := r.log.With(
		zap.String("method", "Resolve"),
		zap.String("program", base58.Encode(program)),
		zap.String("kind", kind.String()),
	)
	tracer.AddAttribute("kind", kind.String())

	res, err := func() (*Result, error) {
		seeds, err := mmm.BuildSeeds(kind, ids)
		if err != nil {
			return nil, err
		}

		derived, bump, err := r.derive(ctx, program, seeds...)
		if err != nil {
			return nil, err
		}

		res := &Result{
			Program: program,
			Kind:    kind,
			Seeds:   seeds,
			Address: derived,
			Bump:    bump,
		}

		if err := r.record(ctx, res, ids); err != nil {
			return nil, err
		}
		return res, nil
	}()
	if err != nil {
		log.With(zap.Error(err)).Warn("failure resolving address")
		tracer.OnError(err)
		return nil, err
	}

	tracer.AddAttribute("bump", int(res.Bump))
	return res, nil
}

// GetRecord loads a previously resolved address from the index
func (r *Resolver) GetRecord(ctx context.Context, derived string) (*address.Record, error) {
	if r.data == nil {
		return nil, ErrIndexDisabled
	}
	return r.data.GetByAddress(ctx, derived)
}

// GetPoolRecords loads the resolved addresses derived from a pool
func (r *Resolver) GetPoolRecords(ctx context.Context, pool string) ([]*address.Record, error) {
	if r.data == nil {
		return nil, ErrIndexDisabled
	}
	return r.data.GetAllByPool(ctx, pool)
}

func (r *Resolver) derive(ctx context.Context, program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	// Validate before building a cache key so invalid inputs never alias valid
	// ones
	if err := solana.ValidateSeeds(seeds...); err != nil {
		return nil, 0, err
	}

	key := cacheKey(program, seeds...)
	if cached, ok := r.derivations.Retrieve(key); ok {
		metrics.RecordCount(ctx, cacheHitMetricName, 1)
		derivation := cached.(*cachedDerivation)
		return cloneKey(derivation.address), derivation.bump, nil
	}
	metrics.RecordCount(ctx, cacheMissMetricName, 1)

	derived, bump, err := solana.FindProgramAddressAndBump(program, seeds...)
	if err != nil {
		return nil, 0, err
	}

	r.derivations.Insert(key, &cachedDerivation{address: cloneKey(derived), bump: bump})
	return derived, bump, nil
}

func (r *Resolver) record(ctx context.Context, res *Result, ids mmm.Identifiers) error {
	if r.data == nil || !r.conf.recordAddresses.Get(ctx) {
		return nil
	}

	schema, err := mmm.GetSeedSchema(res.Kind)
	if err != nil {
		return err
	}

	// Callers may pass identifiers the entity kind doesn't use
	used := make(mmm.Identifiers)
	for _, role := range schema.Fields {
		used[role] = ids[role]
	}

	record := address.NewRecord(res.Program, res.Kind, used, res.Address, res.Bump)
	if err := r.data.Put(ctx, record); err != nil {
		return errors.Wrap(err, "error recording derived address")
	}

	metrics.RecordEvent(ctx, addressRecordedEventName, map[string]interface{}{
		"id":      record.Id,
		"kind":    res.Kind.String(),
		"address": record.Address,
	})
	return nil
}

// cacheKey length-prefixes each seed so distinct seed lists never share a key,
// even where their concatenations collide
func cacheKey(program ed25519.PublicKey, seeds ...[]byte) string {
	var sb strings.Builder
	sb.Write(program)
	for _, seed := range seeds {
		sb.WriteByte(byte(len(seed)))
		sb.Write(seed)
	}
	return sb.String()
}

func cloneKey(key ed25519.PublicKey) ed25519.PublicKey {
	cloned := make(ed25519.PublicKey, len(key))
	copy(cloned, key)
	return cloned
}
