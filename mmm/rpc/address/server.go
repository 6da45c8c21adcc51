package address

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/the-1ndex/mmm/grpc/client"
	address_data "github.com/the-1ndex/mmm/mmm/data/address"
	"github.com/the-1ndex/mmm/mmm/pda"
	"github.com/the-1ndex/mmm/solana"
	"github.com/the-1ndex/mmm/solana/mmm"
)

const (
	ResultOk            = "OK"
	ResultNotFound      = "NOT_FOUND"
	ResultIndexDisabled = "INDEX_DISABLED"

	resultField  = "result"
	programField = "program"
	kindField    = "kind"
	addressField = "address"
	bumpField    = "bump"
	seedsField   = "seeds"
	recordField  = "record"

	createdAtField = "created_at"
)

type server struct {
	log      *zap.Logger
	conf     *conf
	resolver *pda.Resolver
}

func NewAddressServer(
	log *zap.Logger,
	resolver *pda.Resolver,
	configProvider ConfigProvider,
) AddressServer {
	return &server{
		log:      log,
		conf:     configProvider(),
		resolver: resolver,
	}
}

func (s *server) Derive(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	log := s.log.With(zap.String("method", "Derive"))
	log = client.InjectLoggingMetadata(ctx, log)

	program, kind, ids, err := parseDeriveRequest(req)
	if err != nil {
		log.With(zap.Error(err)).Debug("invalid request")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	log = log.With(
		zap.String("program", base58.Encode(program)),
		zap.String("kind", kind.String()),
	)

	if !bytes.Equal(program, mmm.PROGRAM_ID) && !s.conf.allowCustomPrograms.Get(ctx) {
		return nil, status.Error(codes.InvalidArgument, "custom programs are not allowed")
	}

	res, err := s.resolver.Resolve(ctx, program, kind, ids)
	if isInvalidArgument(err) {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	} else if err != nil {
		log.With(zap.Error(err)).Warn("failure resolving address")
		return nil, status.Error(codes.Internal, err.Error())
	}

	seeds := make([]interface{}, len(res.Seeds))
	for i, seed := range res.Seeds {
		seeds[i] = base58.Encode(seed)
	}

	return toResponse(map[string]interface{}{
		resultField:  ResultOk,
		programField: base58.Encode(res.Program),
		kindField:    res.Kind.String(),
		addressField: base58.Encode(res.Address),
		bumpField:    int(res.Bump),
		seedsField:   seeds,
	})
}

func (s *server) Lookup(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	log := s.log.With(zap.String("method", "Lookup"))
	log = client.InjectLoggingMetadata(ctx, log)

	value, err := getStringField(req, addressField)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if _, err := solana.PublicKeyFromBase58(value); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	for key := range req.GetFields() {
		if key != addressField {
			return nil, status.Errorf(codes.InvalidArgument, "unexpected field: %s", key)
		}
	}

	log = log.With(zap.String("address", value))

	record, err := s.resolver.GetRecord(ctx, value)
	switch err {
	case nil:
	case pda.ErrIndexDisabled:
		return toResponse(map[string]interface{}{resultField: ResultIndexDisabled})
	case address_data.ErrNotFound:
		return toResponse(map[string]interface{}{resultField: ResultNotFound})
	default:
		log.With(zap.Error(err)).Warn("failure getting address record")
		return nil, status.Error(codes.Internal, err.Error())
	}

	return toResponse(map[string]interface{}{
		resultField: ResultOk,
		recordField: recordToMap(record),
	})
}

func parseDeriveRequest(req *structpb.Struct) (ed25519.PublicKey, mmm.EntityKind, mmm.Identifiers, error) {
	program := mmm.PROGRAM_ID
	kind := mmm.EntityKindUnknown
	ids := make(mmm.Identifiers)

	for key := range req.GetFields() {
		value, err := getStringField(req, key)
		if err != nil {
			return nil, mmm.EntityKindUnknown, nil, err
		}

		switch key {
		case programField:
			program, err = solana.PublicKeyFromBase58(value)
			if err != nil {
				return nil, mmm.EntityKindUnknown, nil, errors.Wrap(err, "invalid program")
			}
		case kindField:
			kind, err = mmm.ParseEntityKind(value)
			if err != nil {
				return nil, mmm.EntityKindUnknown, nil, err
			}
		default:
			role, err := mmm.ParseFieldRole(key)
			if err != nil {
				return nil, mmm.EntityKindUnknown, nil, errors.Errorf("unexpected field: %s", key)
			}

			ids[role], err = solana.PublicKeyFromBase58(value)
			if err != nil {
				return nil, mmm.EntityKindUnknown, nil, errors.Wrapf(err, "invalid %s", role)
			}
		}
	}

	if kind == mmm.EntityKindUnknown {
		return nil, mmm.EntityKindUnknown, nil, errors.New("kind is required")
	}
	return program, kind, ids, nil
}

func getStringField(req *structpb.Struct, name string) (string, error) {
	value, ok := req.GetFields()[name]
	if !ok {
		return "", errors.Errorf("%s is required", name)
	}

	typed, ok := value.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", errors.Errorf("%s must be a string", name)
	}
	return typed.StringValue, nil
}

func isInvalidArgument(err error) bool {
	for _, target := range []error{
		mmm.ErrMissingIdentifier,
		mmm.ErrUnknownEntityKind,
		solana.ErrInvalidSeedCount,
		solana.ErrInvalidSeedLength,
		solana.ErrInvalidPublicKey,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func recordToMap(record *address_data.Record) map[string]interface{} {
	res := map[string]interface{}{
		addressField:   record.Address,
		bumpField:      int(record.Bump),
		programField:   record.Program,
		kindField:      record.Kind.String(),
		createdAtField: record.CreatedAt.UTC().Format(time.RFC3339),
	}

	for role, value := range map[mmm.FieldRole]string{
		mmm.FieldRoleOwner:     record.Owner,
		mmm.FieldRoleUuid:      record.Uuid,
		mmm.FieldRolePool:      record.Pool,
		mmm.FieldRoleAssetMint: record.AssetMint,
	} {
		if len(value) > 0 {
			res[role.String()] = value
		}
	}
	return res
}

func toResponse(fields map[string]interface{}) (*structpb.Struct, error) {
	resp, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}
