// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
)

// coin amounts are in the smallest unit, 10^8 per coin
const (
	coin = 100000000

	hour = 60 * 60
	day  = 24 * hour
)

// DefaultValidatorStake - stake of each generated test validator
const DefaultValidatorStake = 10000000 * coin

// GenesisConfiguration - economic parameters fixed at genesis
type GenesisConfiguration struct {
	EpochDurationSecs           uint64
	MinimumStake                uint64
	MaximumStake                uint64
	RecurringLockupDurationSecs uint64
	RequiredProposerStake       uint64
	RewardsAPYPercentage        uint64
	VotingDurationSecs          uint64
	VotingPowerIncreaseLimit    uint64
	Voters                      []ledger.Address
	MinVotingThreshold          uint64
	EmployeeVestingStartSecs    uint64
	EmployeeVestingPeriodSecs   uint64
}

// DefaultGenesisConfiguration - parameters for test and development chains
func DefaultGenesisConfiguration() GenesisConfiguration {
	return GenesisConfiguration{
		EpochDurationSecs:           2 * hour,
		MinimumStake:                1000000 * coin,
		MaximumStake:                50000000 * coin,
		RecurringLockupDurationSecs: 30 * day,
		RequiredProposerStake:       1000000 * coin,
		RewardsAPYPercentage:        1000,
		VotingDurationSecs:          7 * day,
		VotingPowerIncreaseLimit:    30,
		Voters: []ledger.Address{
			ledger.MustAddress("0xdd1"),
			ledger.MustAddress("0xdd2"),
			ledger.MustAddress("0xdd3"),
		},
		MinVotingThreshold:        2,
		EmployeeVestingStartSecs:  1663456089,
		EmployeeVestingPeriodSecs: 5 * 60,
	}
}

// AccountBalance - an account funded at genesis
type AccountBalance struct {
	Address ledger.Address
	Balance uint64
}

// Validator - an initial validator
type Validator struct {
	Owner              ledger.Address
	ConsensusPublicKey []byte
	Stake              uint64
}

// TestValidators - reproducible validators for test chains
func TestValidators(count int, stake uint64) []Validator {
	v := make([]Validator, count)
	for i := range v {
		key := account.DeterministicPrivateKey("validator", uint64(i))
		v[i] = Validator{
			Owner:              key.Address(),
			ConsensusPublicKey: key.PublicKey(),
			Stake:              stake,
		}
	}
	return v
}

// Genesis - everything needed to build the first state of a chain
type Genesis struct {
	ChainID       uint8
	Configuration GenesisConfiguration
	GasSchedule   GasSchedule
	Validators    []Validator
	Accounts      []AccountBalance
	Framework     Bundle
}

// GenerateGenesis - the write set that creates a chain
//
// the same input always gives the same write set
func GenerateGenesis(g *Genesis) (*ledger.WriteSet, error) {
	if err := g.validate(); nil != err {
		return nil, err
	}

	c := &g.Configuration
	ws := ledger.NewWriteSet()
	core := ledger.CoreAddress

	WriteResource(ws, core, &AccountResource{AuthenticationKey: core})
	WriteResource(ws, core, &ChainIDResource{ID: g.ChainID})

	gas := g.GasSchedule
	WriteResource(ws, core, &gas)

	WriteResource(ws, core, &StakingConfig{
		EpochDurationSecs:           c.EpochDurationSecs,
		MinimumStake:                c.MinimumStake,
		MaximumStake:                c.MaximumStake,
		RecurringLockupDurationSecs: c.RecurringLockupDurationSecs,
		RequiredProposerStake:       c.RequiredProposerStake,
		RewardsAPYPercentage:        c.RewardsAPYPercentage,
		VotingPowerIncreaseLimit:    c.VotingPowerIncreaseLimit,
	})
	WriteResource(ws, core, &GovernanceConfig{
		VotingDurationSecs: c.VotingDurationSecs,
		MinVotingThreshold: c.MinVotingThreshold,
		Voters:             append([]ledger.Address(nil), c.Voters...),
	})
	WriteResource(ws, core, &VestingConfig{
		StartTimestampSecs: c.EmployeeVestingStartSecs,
		PeriodDurationSecs: c.EmployeeVestingPeriodSecs,
	})

	for _, m := range g.Framework {
		ws.Put(ledger.ModuleKey(core, m.Name), ledger.Set(ledger.NewStateValue(m.Code)))
	}

	set := &ValidatorSet{}
	for _, v := range g.Validators {
		set.Validators = append(set.Validators, ValidatorInfo{
			Address:            v.Owner,
			ConsensusPublicKey: v.ConsensusPublicKey,
			VotingPower:        v.Stake,
		})
		WriteResource(ws, v.Owner, &AccountResource{AuthenticationKey: v.Owner})
		WriteResource(ws, v.Owner, &CoinStore{})
	}
	WriteResource(ws, core, set)

	for _, a := range g.Accounts {
		WriteResource(ws, a.Address, &AccountResource{AuthenticationKey: a.Address})
		WriteResource(ws, a.Address, &CoinStore{Value: a.Balance})
	}
	return ws, nil
}

func (g *Genesis) validate() error {
	c := &g.Configuration

	if 0 == g.ChainID {
		return fmt.Errorf("chain id: %w", fault.ErrInvalidChain)
	}
	if 0 == len(g.Validators) {
		return fmt.Errorf("no validators: %w", fault.ErrMissingParameters)
	}
	if c.MinimumStake > c.MaximumStake {
		return fmt.Errorf("minimum stake: %d > maximum stake: %d: %w", c.MinimumStake, c.MaximumStake, fault.ErrInvalidAmount)
	}
	if c.MinVotingThreshold > uint64(len(c.Voters)) {
		return fmt.Errorf("voting threshold: %d with %d voters: %w", c.MinVotingThreshold, len(c.Voters), fault.ErrMissingParameters)
	}
	if g.GasSchedule.MinGasUnitPrice > g.GasSchedule.MaxGasUnitPrice {
		return fmt.Errorf("gas unit price bounds: %w", fault.ErrInvalidAmount)
	}

	seen := make(map[ledger.Address]struct{})
	for _, v := range g.Validators {
		if v.Stake < c.MinimumStake || v.Stake > c.MaximumStake {
			return fmt.Errorf("validator: %s stake: %d: %w", v.Owner, v.Stake, fault.ErrInvalidAmount)
		}
		if _, ok := seen[v.Owner]; ok {
			return fmt.Errorf("validator: %s duplicated: %w", v.Owner, fault.ErrInvalidAddress)
		}
		seen[v.Owner] = struct{}{}
	}
	for _, a := range g.Accounts {
		if a.Address == ledger.CoreAddress {
			return fmt.Errorf("account: %s is reserved: %w", a.Address, fault.ErrInvalidAddress)
		}
		if _, ok := seen[a.Address]; ok {
			return fmt.Errorf("account: %s duplicated: %w", a.Address, fault.ErrInvalidAddress)
		}
		seen[a.Address] = struct{}{}
	}
	return nil
}
