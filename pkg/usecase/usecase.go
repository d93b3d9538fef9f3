package usecase

import (
	"github.com/spendgraph/spendgraph/pkg/domain/interfaces"
	"github.com/spendgraph/spendgraph/pkg/service/classify"
	"github.com/spendgraph/spendgraph/pkg/service/extract"
)

// UseCases bundles the graph construction, merge and analytics
// operations behind one entry point shared by the HTTP controller and
// the CLI.
type UseCases struct {
	repo       interfaces.Repository
	extractor  *extract.Extractor
	classifier *classify.Classifier

	// persistSync forces Build to wait for storage instead of
	// dispatching it in the background. Used by the one-shot CLI path.
	persistSync bool
}

type Option func(*UseCases)

func WithExtractor(x *extract.Extractor) Option {
	return func(uc *UseCases) {
		uc.extractor = x
	}
}

func WithClassifier(x *classify.Classifier) Option {
	return func(uc *UseCases) {
		uc.classifier = x
	}
}

func WithSyncPersist() Option {
	return func(uc *UseCases) {
		uc.persistSync = true
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.extractor == nil {
		uc.extractor = extract.New(nil)
	}
	if uc.classifier == nil {
		uc.classifier = classify.New(nil)
	}

	return uc
}
