package model

import "github.com/shopspring/decimal"

func init() {
	// 金額はJSONで数値として返す
	decimal.MarshalJSONWithoutQuotes = true
}
