package config

import (
	"github.com/mr-tron/base58"

	"github.com/the-1ndex/mmm/solana/mmm"
)

const (
	ServiceName = "mmm-pda"

	DefaultGrpcListenAddress    = ":8086"
	DefaultMetricsListenAddress = ":9090"
)

var (
	ProgramPublicKeyString = base58.Encode(mmm.PROGRAM_ID)
)
