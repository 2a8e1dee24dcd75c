package idempotency

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/allegro/bigcache/v3"
)

type cachedResponse struct {
	RequestHash string    `json:"h,omitempty"`
	StatusCode  int       `json:"s"`
	Body        []byte    `json:"b"`
	ExpiresOn   time.Time `json:"e"`
}

func cacheKey(req Request) string {
	return req.UserID + "\x00" + req.Key
}

func flightKey(req Request) string {
	return cacheKey(req) + "\x00" + req.RequestHash
}

// fromCache reports ok when a live response is cached for the request. A
// cached response for a different payload is a mismatch.
func (g *Guard) fromCache(req Request) (Response, bool, error) {
	raw, err := g.cache.Get(cacheKey(req))
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			g.log.WithError(err).Debug("idempotency: cache read failed")
		}
		return Response{}, false, nil
	}
	var entry cachedResponse
	if err := json.Unmarshal(raw, &entry); err != nil {
		_ = g.cache.Delete(cacheKey(req))
		return Response{}, false, nil
	}
	if !entry.ExpiresOn.After(g.cfg.Now()) {
		_ = g.cache.Delete(cacheKey(req))
		return Response{}, false, nil
	}
	if entry.RequestHash != "" && req.RequestHash != "" && entry.RequestHash != req.RequestHash {
		return Response{}, false, nil
	}
	return Response{StatusCode: entry.StatusCode, Body: entry.Body, Replayed: true}, true, nil
}

func (g *Guard) remember(req Request, expiresOn time.Time, resp Response) {
	raw, err := json.Marshal(cachedResponse{
		RequestHash: req.RequestHash,
		StatusCode:  resp.StatusCode,
		Body:        resp.Body,
		ExpiresOn:   expiresOn,
	})
	if err != nil {
		return
	}
	if err := g.cache.Set(cacheKey(req), raw); err != nil {
		g.log.WithError(err).Debug("idempotency: cache write failed")
	}
}
