package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	mmm_config "github.com/the-1ndex/mmm/mmm/config"
	"github.com/the-1ndex/mmm/solana"
	"github.com/the-1ndex/mmm/solana/mmm"
)

func runDerive(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("derive", flag.ContinueOnError)
	fs.SetOutput(stderr)

	kindFlag := fs.String("kind", "", "entity kind: pool, sell_state or buyside_sol_escrow")
	programFlag := fs.String("program", mmm_config.ProgramPublicKeyString, "program id")

	roleFlags := make(map[mmm.FieldRole]*string)
	for _, role := range []mmm.FieldRole{mmm.FieldRoleOwner, mmm.FieldRoleUuid, mmm.FieldRolePool, mmm.FieldRoleAssetMint} {
		roleFlags[role] = fs.String(role.String(), "", fmt.Sprintf("%s public key", role))
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return errors.Errorf("unexpected arguments: %v", fs.Args())
	}

	kind, err := mmm.ParseEntityKind(*kindFlag)
	if err != nil {
		return err
	}

	program, err := solana.PublicKeyFromBase58(*programFlag)
	if err != nil {
		return errors.Wrap(err, "invalid program")
	}

	ids := make(mmm.Identifiers)
	for role, value := range roleFlags {
		if len(*value) == 0 {
			continue
		}

		ids[role], err = solana.PublicKeyFromBase58(*value)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", role)
		}
	}

	seeds, err := mmm.BuildSeeds(kind, ids)
	if err != nil {
		return err
	}

	address, bump, err := solana.FindProgramAddressAndBump(program, seeds...)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "address: %s\n", base58.Encode(address))
	fmt.Fprintf(stdout, "bump: %d\n", bump)
	for _, seed := range seeds {
		fmt.Fprintf(stdout, "seed: %s\n", base58.Encode(seed))
	}
	return nil
}
