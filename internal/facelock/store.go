package facelock

import (
	"context"
	"fmt"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/facegeom"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/geometry"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/pkg/imgutil"
)

// Crop geometry for lock extraction.
const (
	facePadRatio = 0.10 // padding around the detected face box
	torsoWidthX  = 1.5  // upper-body crop: horizontal expansion per side
	torsoHeightX = 3.0  // upper-body crop: face heights below the face top
	cropQuality  = 95
)

// State is the identity lock for one (session, image-hash) pair: the
// face crop, upper-body crop and normalized bounding box extracted from
// the original identity image. It is owned exclusively by the Store.
type State struct {
	SessionID   string
	ContentHash string
	Bounds      geometry.NormalizedBox

	FaceCrop      image.Image
	FaceCropJPEG  []byte
	UpperBodyCrop image.Image
	UpperBodyJPEG []byte

	CreatedAt time.Time
	Active    bool
}

type entry struct {
	state      *State
	lastAccess time.Time
}

// Store caches identity locks keyed by (session id, content hash).
// Population of one key happens exactly once; racing writers share the
// first result. Entries expire by TTL from last access.
type Store struct {
	mu       sync.RWMutex
	entries  map[string]*entry
	group    singleflight.Group
	provider facegeom.Provider
	ttl      time.Duration
	now      func() time.Time
	log      logrus.FieldLogger
}

// NewStore creates a Store backed by the given face geometry provider.
func NewStore(provider facegeom.Provider, ttl time.Duration, log logrus.FieldLogger) *Store {
	return &Store{
		entries:  make(map[string]*entry),
		provider: provider,
		ttl:      ttl,
		now:      time.Now,
		log:      log,
	}
}

// Acquire returns the lock for the identity image, extracting it on
// first use and reusing the cached lock while the image hash is
// unchanged.
func (s *Store) Acquire(ctx context.Context, sessionID string, imageData []byte) (*State, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if len(imageData) == 0 {
		return nil, fmt.Errorf("identity image is required")
	}

	hash := imgutil.ContentHash(imageData)
	key := sessionID + ":" + hash

	if state := s.lookup(key); state != nil {
		s.log.WithFields(logrus.Fields{"session": sessionID, "hash": hash[:12]}).
			Debug("face lock cache hit")
		return state, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		// Re-check under the flight: another caller may have stored it
		// between the lookup and Do.
		if state := s.lookup(key); state != nil {
			return state, nil
		}

		state, err := s.extract(sessionID, hash, imageData)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.entries[key] = &entry{state: state, lastAccess: s.now()}
		s.evictExpiredLocked()
		s.mu.Unlock()

		s.log.WithFields(logrus.Fields{"session": sessionID, "hash": hash[:12]}).
			Info("face lock created")
		return state, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*State), nil
}

// InvalidateSession drops every lock held for the session. Called when
// the session's identity image changes or the session ends.
func (s *Store) InvalidateSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.entries {
		if strings.HasPrefix(key, sessionID+":") {
			e.state.Active = false
			delete(s.entries, key)
		}
	}
}

// Len returns the number of live locks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) lookup(key string) *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil
	}
	if s.now().Sub(e.lastAccess) > s.ttl {
		e.state.Active = false
		delete(s.entries, key)
		return nil
	}
	e.lastAccess = s.now()
	return e.state
}

// extract decodes the identity image and derives the lock crops.
func (s *Store) extract(sessionID, hash string, imageData []byte) (*State, error) {
	img, err := imgutil.Decode(imageData)
	if err != nil {
		return nil, fmt.Errorf("decode identity image: %w", err)
	}

	faces, err := s.provider.Detect(img)
	if err != nil {
		return nil, fmt.Errorf("detect identity face: %w", err)
	}
	if len(faces) == 0 {
		return nil, facegeom.ErrNoFace
	}

	// The identity image should contain one subject; take the largest
	// detection when a provider reports extras.
	face := faces[0]
	for _, f := range faces[1:] {
		if f.Box.Area() > face.Box.Area() {
			face = f
		}
	}

	bounds := img.Bounds()
	pad := int(float64(face.Box.Width()) * facePadRatio)
	faceBox := face.Box.Pad(pad, bounds)
	if faceBox.Empty() {
		return nil, facegeom.ErrNoFace
	}

	torsoBox := geometry.Box{
		XMin: face.Box.XMin - int(float64(face.Box.Width())*torsoWidthX),
		YMin: face.Box.YMin,
		XMax: face.Box.XMax + int(float64(face.Box.Width())*torsoWidthX),
		YMax: face.Box.YMin + int(float64(face.Box.Height())*torsoHeightX),
	}.Pad(0, bounds)

	faceCrop := imgutil.Crop(img, faceBox.Rect())
	faceJPEG, err := imgutil.EncodeJPEG(faceCrop, cropQuality)
	if err != nil {
		return nil, fmt.Errorf("encode face crop: %w", err)
	}

	torsoCrop := imgutil.Crop(img, torsoBox.Rect())
	torsoJPEG, err := imgutil.EncodeJPEG(torsoCrop, cropQuality)
	if err != nil {
		return nil, fmt.Errorf("encode upper-body crop: %w", err)
	}

	return &State{
		SessionID:     sessionID,
		ContentHash:   hash,
		Bounds:        geometry.Normalize(faceBox, bounds.Dx(), bounds.Dy()),
		FaceCrop:      faceCrop,
		FaceCropJPEG:  faceJPEG,
		UpperBodyCrop: torsoCrop,
		UpperBodyJPEG: torsoJPEG,
		CreatedAt:     s.now(),
		Active:        true,
	}, nil
}

// evictExpiredLocked sweeps TTL-expired entries. Caller holds mu.
func (s *Store) evictExpiredLocked() {
	cutoff := s.now().Add(-s.ttl)
	for key, e := range s.entries {
		if e.lastAccess.Before(cutoff) {
			e.state.Active = false
			delete(s.entries, key)
		}
	}
}
