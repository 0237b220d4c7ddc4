// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
)

// resource type tags
const (
	AccountTag          = "0x1::account::Account"
	CoinStoreTag        = "0x1::coin::CoinStore<0x1::ledger_coin::LedgerCoin>"
	ChainIDTag          = "0x1::chain_id::ChainId"
	GasScheduleTag      = "0x1::gas_schedule::GasScheduleV2"
	StakingConfigTag    = "0x1::staking_config::StakingConfig"
	GovernanceConfigTag = "0x1::governance::GovernanceConfig"
	VestingConfigTag    = "0x1::vesting::VestingConfig"
	ValidatorSetTag     = "0x1::stake::ValidatorSet"
)

// Resource - a typed record stored under an account
type Resource interface {
	TypeTag() string
	Pack() []byte
	Unpack([]byte) error
}

// OnChainConfig - a resource with one chain wide instance held by the
// core account
type OnChainConfig interface {
	Resource
}

// ReadResource - load a resource published under address
//
// false if it does not exist, a corrupt record is an error
func ReadResource(view ledger.StateView, address ledger.Address, r Resource) (bool, error) {
	v, err := view.GetStateValue(ledger.ResourceKey(address, r.TypeTag()))
	if nil != err {
		return false, err
	}
	if nil == v {
		return false, nil
	}
	if err := r.Unpack(v.Bytes); nil != err {
		return false, fmt.Errorf("%s at %s: %s: %w", r.TypeTag(), address, err, fault.ErrDecode)
	}
	return true, nil
}

// WriteResource - add the set of a resource to a write set
func WriteResource(ws *ledger.WriteSet, address ledger.Address, r Resource) {
	ws.Put(ledger.ResourceKey(address, r.TypeTag()), ledger.Set(ledger.NewStateValue(r.Pack())))
}

// FetchConfig - resolve an on-chain configuration
func FetchConfig(view ledger.StateView, config OnChainConfig) (bool, error) {
	return ReadResource(view, ledger.CoreAddress, config)
}

// ChainIDResource - identifies the chain a state belongs to
type ChainIDResource struct {
	ID uint8
}

func (*ChainIDResource) TypeTag() string { return ChainIDTag }

func (r *ChainIDResource) Pack() []byte { return []byte{r.ID} }

func (r *ChainIDResource) Unpack(b []byte) error {
	if 1 != len(b) {
		return fault.ErrInvalidKeyLength
	}
	r.ID = b[0]
	return nil
}

// AccountResource - sequence number and the key allowed to sign for
// the account
type AccountResource struct {
	AuthenticationKey ledger.Address
	SequenceNumber    uint64
}

func (*AccountResource) TypeTag() string { return AccountTag }

func (r *AccountResource) Pack() []byte {
	return packer(nil).address(r.AuthenticationKey).uint64(r.SequenceNumber)
}

func (r *AccountResource) Unpack(b []byte) error {
	u := unpacker{buffer: b}
	r.AuthenticationKey = u.address()
	r.SequenceNumber = u.uint64()
	return u.finish()
}

// CoinStore - the coin balance of an account
type CoinStore struct {
	Value uint64
}

func (*CoinStore) TypeTag() string { return CoinStoreTag }

func (r *CoinStore) Pack() []byte { return packer(nil).uint64(r.Value) }

func (r *CoinStore) Unpack(b []byte) error {
	u := unpacker{buffer: b}
	r.Value = u.uint64()
	return u.finish()
}

// GasSchedule - bounds and costs for transaction fees
type GasSchedule struct {
	FeatureVersion          uint64
	MinTransactionGasUnits  uint64
	MaxTransactionGasUnits  uint64
	MinGasUnitPrice         uint64
	MaxGasUnitPrice         uint64
	MaxTransactionSizeBytes uint64
	TransferGasUnits        uint64
}

// DefaultGasSchedule - schedule installed by genesis
func DefaultGasSchedule() GasSchedule {
	return GasSchedule{
		FeatureVersion:          1,
		MinTransactionGasUnits:  6,
		MaxTransactionGasUnits:  2000000,
		MinGasUnitPrice:         100,
		MaxGasUnitPrice:         10000000000,
		MaxTransactionSizeBytes: 64 * 1024,
		TransferGasUnits:        9,
	}
}

func (*GasSchedule) TypeTag() string { return GasScheduleTag }

func (r *GasSchedule) Pack() []byte {
	return packer(nil).
		uint64(r.FeatureVersion).
		uint64(r.MinTransactionGasUnits).
		uint64(r.MaxTransactionGasUnits).
		uint64(r.MinGasUnitPrice).
		uint64(r.MaxGasUnitPrice).
		uint64(r.MaxTransactionSizeBytes).
		uint64(r.TransferGasUnits)
}

func (r *GasSchedule) Unpack(b []byte) error {
	u := unpacker{buffer: b}
	r.FeatureVersion = u.uint64()
	r.MinTransactionGasUnits = u.uint64()
	r.MaxTransactionGasUnits = u.uint64()
	r.MinGasUnitPrice = u.uint64()
	r.MaxGasUnitPrice = u.uint64()
	r.MaxTransactionSizeBytes = u.uint64()
	r.TransferGasUnits = u.uint64()
	return u.finish()
}

// StakingConfig - validator economics
type StakingConfig struct {
	EpochDurationSecs           uint64
	MinimumStake                uint64
	MaximumStake                uint64
	RecurringLockupDurationSecs uint64
	RequiredProposerStake       uint64
	RewardsAPYPercentage        uint64
	VotingPowerIncreaseLimit    uint64
}

func (*StakingConfig) TypeTag() string { return StakingConfigTag }

func (r *StakingConfig) Pack() []byte {
	return packer(nil).
		uint64(r.EpochDurationSecs).
		uint64(r.MinimumStake).
		uint64(r.MaximumStake).
		uint64(r.RecurringLockupDurationSecs).
		uint64(r.RequiredProposerStake).
		uint64(r.RewardsAPYPercentage).
		uint64(r.VotingPowerIncreaseLimit)
}

func (r *StakingConfig) Unpack(b []byte) error {
	u := unpacker{buffer: b}
	r.EpochDurationSecs = u.uint64()
	r.MinimumStake = u.uint64()
	r.MaximumStake = u.uint64()
	r.RecurringLockupDurationSecs = u.uint64()
	r.RequiredProposerStake = u.uint64()
	r.RewardsAPYPercentage = u.uint64()
	r.VotingPowerIncreaseLimit = u.uint64()
	return u.finish()
}

// GovernanceConfig - who may vote on chain changes
type GovernanceConfig struct {
	VotingDurationSecs uint64
	MinVotingThreshold uint64
	Voters             []ledger.Address
}

func (*GovernanceConfig) TypeTag() string { return GovernanceConfigTag }

func (r *GovernanceConfig) Pack() []byte {
	p := packer(nil).
		uint64(r.VotingDurationSecs).
		uint64(r.MinVotingThreshold).
		uint64(uint64(len(r.Voters)))
	for _, v := range r.Voters {
		p = p.address(v)
	}
	return p
}

func (r *GovernanceConfig) Unpack(b []byte) error {
	u := unpacker{buffer: b}
	r.VotingDurationSecs = u.uint64()
	r.MinVotingThreshold = u.uint64()
	n := u.count()
	r.Voters = make([]ledger.Address, n)
	for i := range r.Voters {
		r.Voters[i] = u.address()
	}
	return u.finish()
}

// VestingConfig - schedule for employee vesting pools
type VestingConfig struct {
	StartTimestampSecs uint64
	PeriodDurationSecs uint64
}

func (*VestingConfig) TypeTag() string { return VestingConfigTag }

func (r *VestingConfig) Pack() []byte {
	return packer(nil).uint64(r.StartTimestampSecs).uint64(r.PeriodDurationSecs)
}

func (r *VestingConfig) Unpack(b []byte) error {
	u := unpacker{buffer: b}
	r.StartTimestampSecs = u.uint64()
	r.PeriodDurationSecs = u.uint64()
	return u.finish()
}

// ValidatorInfo - one member of the validator set
type ValidatorInfo struct {
	Address            ledger.Address
	ConsensusPublicKey []byte
	VotingPower        uint64
}

// ValidatorSet - the active validators
type ValidatorSet struct {
	Validators []ValidatorInfo
}

func (*ValidatorSet) TypeTag() string { return ValidatorSetTag }

func (r *ValidatorSet) Pack() []byte {
	p := packer(nil).uint64(uint64(len(r.Validators)))
	for _, v := range r.Validators {
		p = p.address(v.Address).bytes(v.ConsensusPublicKey).uint64(v.VotingPower)
	}
	return p
}

func (r *ValidatorSet) Unpack(b []byte) error {
	u := unpacker{buffer: b}
	n := u.count()
	r.Validators = make([]ValidatorInfo, n)
	for i := range r.Validators {
		r.Validators[i].Address = u.address()
		r.Validators[i].ConsensusPublicKey = u.bytes()
		r.Validators[i].VotingPower = u.uint64()
	}
	return u.finish()
}

// AccountState - the externally visible summary of an account
type AccountState struct {
	Address           ledger.Address `json:"address"`
	AuthenticationKey ledger.Address `json:"authentication_key"`
	SequenceNumber    uint64         `json:"sequence_number"`
	Balance           uint64         `json:"balance"`
}

// ReadAccountState - load the account and coin resources of an address
//
// nil if the account does not exist
func ReadAccountState(view ledger.StateView, address ledger.Address) (*AccountState, error) {
	var a AccountResource
	found, err := ReadResource(view, address, &a)
	if nil != err || !found {
		return nil, err
	}
	var c CoinStore
	if _, err := ReadResource(view, address, &c); nil != err {
		return nil, err
	}
	return &AccountState{
		Address:           address,
		AuthenticationKey: a.AuthenticationKey,
		SequenceNumber:    a.SequenceNumber,
		Balance:           c.Value,
	}, nil
}
