package repository

import "errors"

var (
	// 対象が無い
	ErrNotFound = errors.New("not found")
	// ユニーク制約違反
	ErrDuplicate = errors.New("duplicate")
)
