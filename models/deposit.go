package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Coin string

const (
	CoinBTC  Coin = "BTC"
	CoinETH  Coin = "ETH"
	CoinUSDT Coin = "USDT"
)

func (c Coin) Valid() bool {
	return c == CoinBTC || c == CoinETH || c == CoinUSDT
}

// AllCoins in display order.
var AllCoins = []Coin{CoinBTC, CoinETH, CoinUSDT}

type DepositStatus string

const (
	DepositStatusPending  DepositStatus = "pending"
	DepositStatusApproved DepositStatus = "approved"
	DepositStatusRejected DepositStatus = "rejected"
)

func (s DepositStatus) Valid() bool {
	return s == DepositStatusPending || s == DepositStatusApproved || s == DepositStatusRejected
}

// Deposit is a simulated crypto funding request. Approval is the only path
// that credits the wallet, and only ever from the pending state.
type Deposit struct {
	ID                   string          `json:"id" gorm:"primaryKey"`
	UserID               string          `json:"user_id" gorm:"not null;index"`
	AmountUsd            decimal.Decimal `json:"amount_usd" gorm:"type:decimal(12,2);not null"`
	Coin                 Coin            `json:"coin" gorm:"not null"`
	CryptoAmountExpected decimal.Decimal `json:"crypto_amount_expected" gorm:"type:decimal(20,8)"`
	WalletAddress        string          `json:"wallet_address"`
	TxHash               string          `json:"tx_hash"`
	Status               DepositStatus   `json:"status" gorm:"default:'pending';index"`
	CreatedAt            time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt            time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
