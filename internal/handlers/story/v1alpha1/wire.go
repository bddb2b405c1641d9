package v1alpha1

import (
	"encoding/json"
	"time"

	"github.com/KirkDiggler/rpg-story/internal/engine/graph"
	"github.com/KirkDiggler/rpg-story/internal/engine/playback"
	"github.com/KirkDiggler/rpg-story/internal/engine/rules"
	"github.com/KirkDiggler/rpg-story/internal/engine/values"
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
	"github.com/KirkDiggler/rpg-story/internal/orchestrators/authoring"
	"github.com/KirkDiggler/rpg-story/internal/orchestrators/preview"
	previewsession "github.com/KirkDiggler/rpg-story/internal/repositories/preview_session"
	storyrepo "github.com/KirkDiggler/rpg-story/internal/repositories/story"
)

// Request payloads

// StoryRequest carries a full story document
type StoryRequest struct {
	Story           *story.Story `json:"story"`
	ExpectedVersion int64        `json:"expectedVersion,omitempty"`
}

// StoryIDRequest names a stored story
type StoryIDRequest struct {
	StoryID string `json:"storyId"`
}

// ListStoriesRequest controls listing
type ListStoriesRequest struct {
	Limit int `json:"limit,omitempty"`
}

// AnalyzeRequest names a stored story or carries an unsaved one
type AnalyzeRequest struct {
	StoryID string       `json:"storyId,omitempty"`
	Story   *story.Story `json:"story,omitempty"`
}

// SimulateRequest configures random playthroughs
type SimulateRequest struct {
	StoryID      string `json:"storyId"`
	Runs         int    `json:"runs,omitempty"`
	StartSceneID string `json:"startSceneId,omitempty"`
	MaxSteps     int    `json:"maxSteps,omitempty"`
	MaxRevivals  int    `json:"maxRevivals,omitempty"`
	PayPrices    bool   `json:"payPrices,omitempty"`
}

// StartSessionRequest starts a preview
type StartSessionRequest struct {
	StoryID string `json:"storyId"`
	SceneID string `json:"sceneId,omitempty"`
}

// SessionRequest names a preview session
type SessionRequest struct {
	SessionID string `json:"sessionId"`
}

// SelectChoiceRequest picks an option
type SelectChoiceRequest struct {
	SessionID string `json:"sessionId"`
	OptionID  string `json:"optionId"`
	PricePaid bool   `json:"pricePaid,omitempty"`
}

// ResolveRequest reports a QTE or dialogue task result
type ResolveRequest struct {
	SessionID string `json:"sessionId"`
	Success   bool   `json:"success"`
}

// Response payloads

// RecordResponse is a stored story with its metadata
type RecordResponse struct {
	Story     *story.Story `json:"story"`
	Version   int64        `json:"version"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// StoryResponse is returned by story reads and writes
type StoryResponse struct {
	Record   *RecordResponse `json:"record"`
	Warnings []rules.Warning `json:"warnings,omitempty"`
}

// ListStoriesResponse lists stored stories
type ListStoriesResponse struct {
	Records []*RecordResponse `json:"records"`
}

// GraphResponse wraps a derived graph
type GraphResponse struct {
	Graph *graph.Graph `json:"graph"`
}

// LintResponse wraps lint warnings
type LintResponse struct {
	Warnings []rules.Warning `json:"warnings"`
}

// SimulateResponse aggregates simulated runs
type SimulateResponse struct {
	Runs      int                     `json:"runs"`
	Endings   map[playback.Ending]int `json:"endings"`
	Truncated int                     `json:"truncated"`
	Visits    map[string]int          `json:"visits"`
	Traces    []*playback.Trace       `json:"traces"`
}

// ViewResponse is the renderable state of a preview
type ViewResponse struct {
	SceneID          string          `json:"sceneId"`
	SceneTitle       string          `json:"sceneTitle"`
	SceneType        story.SceneType `json:"sceneType"`
	LocationName     string          `json:"locationName,omitempty"`
	Element          json.RawMessage `json:"element"`
	ElementIndex     int             `json:"elementIndex"`
	ElementCount     int             `json:"elementCount"`
	Ended            bool            `json:"ended"`
	Ending           playback.Ending `json:"ending,omitempty"`
	RevivalAvailable bool            `json:"revivalAvailable"`
	Values           values.Values   `json:"values"`
}

// SessionResponse is returned by every preview command
type SessionResponse struct {
	Session *previewsession.Session `json:"session"`
	View    *ViewResponse           `json:"view"`
	Changed map[string]int          `json:"changed"`
}

// EndSessionResponse reports whether a session was removed
type EndSessionResponse struct {
	Deleted bool `json:"deleted"`
}

func toRecordResponse(rec *storyrepo.Record) *RecordResponse {
	if rec == nil {
		return nil
	}
	return &RecordResponse{
		Story:     rec.Story,
		Version:   rec.Version,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func toView(v playback.View) (*ViewResponse, error) {
	el, err := story.MarshalElement(v.Element)
	if err != nil {
		return nil, err
	}
	out := &ViewResponse{
		LocationName:     v.LocationName,
		Element:          el,
		ElementIndex:     v.ElementIndex,
		ElementCount:     v.ElementCount,
		Ended:            v.Ended,
		Ending:           v.Ending,
		RevivalAvailable: v.RevivalAvailable,
		Values:           v.Values,
	}
	if v.Scene != nil {
		out.SceneID = v.Scene.ID
		out.SceneTitle = v.Scene.Title
		out.SceneType = v.Scene.Type
	}
	return out, nil
}

func toSessionResponse(out *preview.SessionOutput) (*SessionResponse, error) {
	view, err := toView(out.View)
	if err != nil {
		return nil, err
	}
	return &SessionResponse{Session: out.Session, View: view, Changed: out.Changed}, nil
}

func toSimulateResponse(out *authoring.SimulateStoryOutput) *SimulateResponse {
	return &SimulateResponse{
		Runs:      len(out.Traces),
		Endings:   out.Endings,
		Truncated: out.Truncated,
		Visits:    out.Visits,
		Traces:    out.Traces,
	}
}
