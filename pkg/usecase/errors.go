package usecase

import (
	"errors"

	"github.com/spendgraph/spendgraph/pkg/domain/interfaces"
)

// Sentinel errors for the use case layer. ErrGraphNotFound is the
// repository sentinel so HTTP handlers can match a single value.
var (
	ErrGraphNotFound = interfaces.ErrGraphNotFound

	ErrEmptyMerchantName = errors.New("receipt has no merchant name")
	ErrNoGraphsToMerge   = errors.New("no graphs resolved for merge")
)
