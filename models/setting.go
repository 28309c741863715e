package models

import "time"

// Setting is a key/value row for platform configuration, currently the
// per-coin deposit wallet addresses (wallet_btc, wallet_eth, wallet_usdt).
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Value     string    `json:"value" gorm:"type:text"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// WalletSettingKey returns the settings key holding the platform deposit
// address for a coin, e.g. "wallet_btc".
func WalletSettingKey(c Coin) string {
	switch c {
	case CoinBTC:
		return "wallet_btc"
	case CoinETH:
		return "wallet_eth"
	case CoinUSDT:
		return "wallet_usdt"
	}
	return ""
}
