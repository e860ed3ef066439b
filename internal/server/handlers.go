package server

import (
	"encoding/json"
	stdErrors "errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	cerrors "git.home.luguber.info/inful/chainset/internal/errors"
	"git.home.luguber.info/inful/chainset/internal/hashset"
	"git.home.luguber.info/inful/chainset/internal/registry"
	"git.home.luguber.info/inful/chainset/internal/server/responses"
	"git.home.luguber.info/inful/chainset/internal/version"
)

const maxBodyBytes = 1 << 16

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.Success(w, http.StatusOK, responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   version.Version,
		Uptime:    time.Since(s.startTime).Seconds(),
		Sets:      len(s.registry.List()),
	})
}

// decodeBody decodes an optional JSON body into dst. An empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !stdErrors.Is(err, io.EOF) {
		return cerrors.InvalidArgument("invalid request body", err)
	}
	return nil
}

func (s *Server) handleCreateSet(w http.ResponseWriter, r *http.Request) {
	var req responses.CreateSetRequest
	if err := decodeBody(r, &req); err != nil {
		s.Error(w, err)
		return
	}

	var opts []hashset.Option
	if req.BucketCount != nil {
		opts = append(opts, hashset.WithBucketCount(*req.BucketCount))
	}
	if req.LoadFactorLimit != nil {
		opts = append(opts, hashset.WithLoadFactorLimit(*req.LoadFactorLimit))
	}
	if req.PreserveOrderOnRehash != nil {
		opts = append(opts, hashset.WithOrderPreservingRehash(*req.PreserveOrderOnRehash))
	}

	id, err := s.registry.Create(opts...)
	if err != nil {
		s.Error(w, err)
		return
	}
	resp, err := s.setResponse(id)
	if err != nil {
		s.Error(w, err)
		return
	}
	w.Header().Set("Location", "/sets/"+id)
	s.Success(w, http.StatusCreated, resp)
}

func (s *Server) handleListSets(w http.ResponseWriter, _ *http.Request) {
	s.Success(w, http.StatusOK, s.registry.List())
}

func (s *Server) setResponse(id string) (responses.SetResponse, error) {
	info, describe, err := s.registry.Inspect(id)
	return responses.SetResponse{Info: info, Describe: describe}, err
}

func (s *Server) handleGetSet(w http.ResponseWriter, r *http.Request) {
	resp, err := s.setResponse(chi.URLParam(r, "id"))
	if err != nil {
		s.Error(w, err)
		return
	}
	s.Success(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.registry.Delete(id); err != nil {
		s.Error(w, err)
		return
	}
	s.Success(w, http.StatusOK, responses.DeletedResponse{ID: id, Deleted: true})
}

func (s *Server) handleRehash(w http.ResponseWriter, r *http.Request) {
	var req responses.RehashRequest
	if err := decodeBody(r, &req); err != nil {
		s.Error(w, err)
		return
	}
	info, describe, err := s.registry.Update(chi.URLParam(r, "id"), func(set *registry.StringSet) error {
		return cerrors.FromSet(set.Rehash(req.Buckets))
	})
	if err != nil {
		s.Error(w, err)
		return
	}
	s.Success(w, http.StatusOK, responses.SetResponse{Info: info, Describe: describe})
}

// elementOp identifies the set and element a request addresses. chi matches on
// RawPath when the request has one, leaving the segment escaped; otherwise the
// segment is already decoded and must not be unescaped again.
func elementOp(r *http.Request) (id string, value string, err error) {
	id = chi.URLParam(r, "id")
	value = chi.URLParam(r, "value")
	if r.URL.RawPath == "" {
		return id, value, nil
	}
	value, err = url.PathUnescape(value)
	if err != nil {
		return "", "", cerrors.InvalidArgument("invalid element", err)
	}
	return id, value, nil
}

// elementFunc applies one element operation, reporting whether the set changed and
// whether the element is present afterwards.
type elementFunc func(set *registry.StringSet, v hashset.String) (changed, present bool, err error)

func addElement(set *registry.StringSet, v hashset.String) (bool, bool, error) {
	inserted, err := set.Add(v)
	return inserted, err == nil, err
}

func containsElement(set *registry.StringSet, v hashset.String) (bool, bool, error) {
	found, err := set.Contains(v)
	return false, found, err
}

func removeElement(set *registry.StringSet, v hashset.String) (bool, bool, error) {
	removed, err := set.Remove(v)
	return removed, false, err
}

// applyElement runs op against the addressed set and fills in the shared response fields.
func (s *Server) applyElement(r *http.Request, op elementFunc) (responses.ElementResponse, error) {
	id, value, err := elementOp(r)
	if err != nil {
		return responses.ElementResponse{}, err
	}
	resp := responses.ElementResponse{Set: id, Element: value}
	err = s.registry.With(id, func(set *registry.StringSet) error {
		v := hashset.String(value)
		changed, present, err := op(set, v)
		if err != nil {
			return cerrors.FromSet(err)
		}
		bucket, err := set.BucketOf(v)
		if err != nil {
			return cerrors.FromSet(err)
		}
		resp.Changed, resp.Present, resp.Bucket = changed, present, bucket
		resp.Size, resp.Buckets = set.Len(), set.Buckets()
		return nil
	})
	return resp, err
}

func (s *Server) handleAddElement(w http.ResponseWriter, r *http.Request) {
	resp, err := s.applyElement(r, addElement)
	if err != nil {
		s.Error(w, err)
		return
	}
	code := http.StatusOK
	if resp.Changed {
		code = http.StatusCreated
	}
	s.Success(w, code, resp)
}

func (s *Server) handleContainsElement(w http.ResponseWriter, r *http.Request) {
	resp, err := s.applyElement(r, containsElement)
	if err != nil {
		s.Error(w, err)
		return
	}
	if !resp.Present {
		s.write(w, http.StatusNotFound, responses.Response{Data: resp, Error: "element not present"})
		return
	}
	s.Success(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveElement(w http.ResponseWriter, r *http.Request) {
	resp, err := s.applyElement(r, removeElement)
	if err != nil {
		s.Error(w, err)
		return
	}
	if !resp.Changed {
		s.write(w, http.StatusNotFound, responses.Response{Data: resp, Error: "element not present"})
		return
	}
	s.Success(w, http.StatusOK, resp)
}
