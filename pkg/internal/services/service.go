package services

import (
	"time"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/events"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/locks"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	cachestore "github.com/eko/gocache/lib/v4/store"
)

type DeletePolicy string

const (
	// DeletePolicyOwner lets the comment author or the post author delete a comment.
	DeletePolicyOwner DeletePolicy = "owner"
	// DeletePolicyAny lets every signed-in author delete any comment.
	DeletePolicyAny DeletePolicy = "any"
)

// maxToggleAttempts bounds the read-and-conditional-patch loop of a toggle.
const maxToggleAttempts = 3

type Options struct {
	Locker       locks.Locker
	Events       events.Publisher
	Cache        cachestore.StoreInterface
	Detector     LanguageDetector
	DeletePolicy DeletePolicy
	Clock        func() time.Time
}

// Service holds every operation on the content documents. Nothing is kept
// between calls except the collaborators.
type Service struct {
	store    store.DocumentStore
	locker   locks.Locker
	events   events.Publisher
	cache    cachestore.StoreInterface
	detector LanguageDetector
	policy   DeletePolicy
	now      func() time.Time
}

func New(s store.DocumentStore, opts Options) *Service {
	v := &Service{
		store:    s,
		locker:   opts.Locker,
		events:   opts.Events,
		cache:    opts.Cache,
		detector: opts.Detector,
		policy:   opts.DeletePolicy,
		now:      opts.Clock,
	}
	if v.locker == nil {
		v.locker = locks.NewLocalLocker()
	}
	if v.events == nil {
		v.events = events.Discard{}
	}
	if v.detector == nil {
		v.detector = NewLinguaDetector()
	}
	if len(v.policy) == 0 {
		v.policy = DeletePolicyOwner
	}
	if v.now == nil {
		v.now = time.Now
	}
	return v
}

func (v *Service) Store() store.DocumentStore {
	return v.store
}
