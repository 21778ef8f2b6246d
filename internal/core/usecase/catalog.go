package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mtorres/eventia/internal/core/model"
	"github.com/mtorres/eventia/internal/core/ports"
)

// participationView is the slice of the participation tracker the catalog
// needs for visibility checks and counters.
type participationView interface {
	// IsParticipant reports roster membership.
	IsParticipant(ctx context.Context, eventID, userID int64) (bool, error)

	// EventsOf returns the ids of the events the user participates in.
	EventsOf(ctx context.Context, userID int64) ([]int64, error)

	// DropEvent discards the roster of a removed event.
	DropEvent(ctx context.Context, eventID int64) error
}

// engagementView is the slice of the engagement store the catalog needs for
// like-based sorting and cleanup.
type engagementView interface {
	// EventLikes returns the current like count of the event.
	EventLikes(ctx context.Context, eventID int64) (int, error)

	// DropEvent discards the engagement state of a removed event.
	DropEvent(ctx context.Context, eventID int64) error
}

// CatalogArgs contains the mandatory arguments for the Catalog.
type CatalogArgs struct {
	// Store is the event persistence port.
	Store ports.EventStore

	// Participation provides roster state the catalog does not own.
	Participation participationView

	// Engagement provides like counts the catalog does not own.
	Engagement engagementView

	// Recorder receives the notification side-effects of catalog mutations.
	Recorder recorder
}

// NewCatalog creates a new Catalog.
func NewCatalog(args CatalogArgs) *Catalog {
	return &Catalog{
		store:         args.Store,
		participation: args.Participation,
		engagement:    args.Engagement,
		recorder:      args.Recorder,
	}
}

// Catalog gathers event CRUD, visibility filtering, search and listing.
// Visibility is always evaluated against the current participant and privacy
// state, never cached.
type Catalog struct {
	store         ports.EventStore
	participation participationView
	engagement    engagementView
	recorder      recorder
}

// Create stores a new event and assigns its id. The organizer is not enrolled
// as a participant: callers join explicitly through the tracker.
func (c *Catalog) Create(ctx context.Context, args model.CreateEventArgs) (*model.CreateEventResponse, error) {
	if args.OrganizerID <= 0 || strings.TrimSpace(args.Title) == "" || args.StartsAt.IsZero() {
		return nil, fmt.Errorf("organizer, title and start time are mandatory: %w", model.ErrInvalidArgument)
	}

	event := &model.Event{
		OrganizerID: args.OrganizerID,
		Title:       args.Title,
		Description: args.Description,
		Location:    args.Location,
		StartsAt:    args.StartsAt,
		Category:    args.Category,
		Speaker:     args.Speaker,
		Private:     args.Private,
		ImageRef:    args.ImageRef,
		Badge:       args.Badge,
		Modality:    args.Modality,
	}
	if event.Modality == "" {
		event.Modality = model.ModalityInPerson
	}

	if err := c.store.SaveEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("error saving event in store: %w", err)
	}

	c.record(ctx, event.OrganizerID, model.Notification{
		Message: fmt.Sprintf("Your event %q was created", event.Title),
		Type:    model.NotificationHistory,
		Sender:  systemSender,
	})

	return &model.CreateEventResponse{Event: *event}, nil
}

// Update fully replaces the event identified by args.ID. It returns
// model.ErrNotFound for an unknown id. CreatedAt is preserved by the store.
func (c *Catalog) Update(ctx context.Context, args model.UpdateEventArgs) (*model.UpdateEventResponse, error) {
	if args.OrganizerID <= 0 || strings.TrimSpace(args.Title) == "" || args.StartsAt.IsZero() {
		return nil, fmt.Errorf("organizer, title and start time are mandatory: %w", model.ErrInvalidArgument)
	}

	event := &model.Event{
		ID:          args.ID,
		OrganizerID: args.OrganizerID,
		Title:       args.Title,
		Description: args.Description,
		Location:    args.Location,
		StartsAt:    args.StartsAt,
		Category:    args.Category,
		Speaker:     args.Speaker,
		Private:     args.Private,
		ImageRef:    args.ImageRef,
		Badge:       args.Badge,
		Modality:    args.Modality,
	}
	if event.Modality == "" {
		event.Modality = model.ModalityInPerson
	}

	if err := c.store.UpdateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("error updating event: %w", err)
	}

	c.record(ctx, event.OrganizerID, model.Notification{
		Message: fmt.Sprintf("Your event %q was updated", event.Title),
		Type:    model.NotificationHistory,
		Sender:  systemSender,
	})

	return &model.UpdateEventResponse{Event: *event}, nil
}

// Remove deletes the event by id and discards its roster and engagement
// state. It reports whether the event existed. The id is never reused.
func (c *Catalog) Remove(ctx context.Context, id int64) (bool, error) {
	event, err := c.store.GetEvent(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error loading event: %w", err)
	}

	removed, err := c.store.DeleteEvent(ctx, id)
	if err != nil {
		return false, fmt.Errorf("error deleting event: %w", err)
	}
	if !removed {
		return false, nil
	}

	if err := c.participation.DropEvent(ctx, id); err != nil {
		return true, fmt.Errorf("error dropping participation state: %w", err)
	}
	if err := c.engagement.DropEvent(ctx, id); err != nil {
		return true, fmt.Errorf("error dropping engagement state: %w", err)
	}

	c.record(ctx, event.OrganizerID, model.Notification{
		Message: fmt.Sprintf("Your event %q was removed", event.Title),
		Type:    model.NotificationHistory,
		Sender:  systemSender,
	})
	return true, nil
}

// FindByID returns the event by id, or model.ErrNotFound.
func (c *Catalog) FindByID(ctx context.Context, id int64) (*model.Event, error) {
	return c.store.GetEvent(ctx, id)
}

// ListAll returns a copy of every event in insertion order.
func (c *Catalog) ListAll(ctx context.Context) ([]model.Event, error) {
	return c.store.ListEvents(ctx)
}

// ListPublic returns the non-private events sorted ascending by start time.
func (c *Catalog) ListPublic(ctx context.Context) ([]model.Event, error) {
	events, err := c.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	out := events[:0:0]
	for _, e := range events {
		if !e.Private {
			out = append(out, e)
		}
	}
	sortByStart(out)
	return out, nil
}

// ListUpcoming returns the events starting strictly after now, ascending.
func (c *Catalog) ListUpcoming(ctx context.Context, now time.Time) ([]model.Event, error) {
	events, err := c.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	out := events[:0:0]
	for _, e := range events {
		if e.StartsAt.After(now) {
			out = append(out, e)
		}
	}
	sortByStart(out)
	return out, nil
}

// ListVisibleTo returns the events the viewer may see, sorted ascending by
// start time. A nil viewer sees only public events.
func (c *Catalog) ListVisibleTo(ctx context.Context, viewer *model.User) ([]model.Event, error) {
	return c.filterVisible(ctx, viewer, func(model.Event) bool { return true })
}

// Search matches the term case-insensitively against title, description,
// location, speaker and category. A blank term degrades to ListVisibleTo.
// Results honour the same visibility predicate as every listing.
func (c *Catalog) Search(ctx context.Context, term string, viewer *model.User) ([]model.Event, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return c.ListVisibleTo(ctx, viewer)
	}
	return c.filterVisible(ctx, viewer, func(e model.Event) bool {
		return containsFold(e.Title, term) ||
			containsFold(e.Description, term) ||
			containsFold(e.Location, term) ||
			containsFold(e.Speaker, term) ||
			containsFold(e.Category, term)
	})
}

// SearchByDate returns the visible events starting on the same calendar day.
func (c *Catalog) SearchByDate(ctx context.Context, date time.Time, viewer *model.User) ([]model.Event, error) {
	return c.filterVisible(ctx, viewer, func(e model.Event) bool {
		return sameDay(e.StartsAt, date)
	})
}

// SearchByCategory returns the visible events of the category, compared
// case-insensitively.
func (c *Catalog) SearchByCategory(ctx context.Context, category string, viewer *model.User) ([]model.Event, error) {
	return c.filterVisible(ctx, viewer, func(e model.Event) bool {
		return strings.EqualFold(e.Category, category)
	})
}

// ListByLikes returns every event sorted descending by like count. Ties keep
// the insertion order.
func (c *Catalog) ListByLikes(ctx context.Context) ([]model.Event, error) {
	events, err := c.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}

	likes := make(map[int64]int, len(events))
	for _, e := range events {
		n, err := c.engagement.EventLikes(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("error reading like count: %w", err)
		}
		likes[e.ID] = n
	}
	sort.SliceStable(events, func(i, j int) bool {
		return likes[events[i].ID] > likes[events[j].ID]
	})
	return events, nil
}

// CountOrganizedBy returns the number of events organized by the user.
func (c *Catalog) CountOrganizedBy(ctx context.Context, userID int64) (int, error) {
	events, err := c.store.ListEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("error listing events: %w", err)
	}
	count := 0
	for _, e := range events {
		if e.OrganizerID == userID {
			count++
		}
	}
	return count, nil
}

// CountParticipationsOf returns the number of events the user participates in.
func (c *Catalog) CountParticipationsOf(ctx context.Context, userID int64) (int, error) {
	ids, err := c.participation.EventsOf(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error listing participations: %w", err)
	}
	return len(ids), nil
}

func (c *Catalog) filterVisible(ctx context.Context, viewer *model.User, pred func(model.Event) bool) ([]model.Event, error) {
	events, err := c.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}

	out := events[:0:0]
	for _, e := range events {
		if !pred(e) {
			continue
		}
		visible, err := c.visibleTo(ctx, e, viewer)
		if err != nil {
			return nil, err
		}
		if visible {
			out = append(out, e)
		}
	}
	sortByStart(out)
	return out, nil
}

// visibleTo implements the visibility predicate: public events are visible to
// everyone, private ones only to the organizer and the participants.
func (c *Catalog) visibleTo(ctx context.Context, e model.Event, viewer *model.User) (bool, error) {
	if !e.Private {
		return true, nil
	}
	if viewer == nil {
		return false, nil
	}
	if viewer.ID == e.OrganizerID {
		return true, nil
	}
	participant, err := c.participation.IsParticipant(ctx, e.ID, viewer.ID)
	if err != nil {
		return false, fmt.Errorf("error checking participation: %w", err)
	}
	return participant, nil
}

func (c *Catalog) record(ctx context.Context, userID int64, n model.Notification) {
	recordBestEffort(ctx, c.recorder, userID, n)
}

func sortByStart(events []model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartsAt.Before(events[j].StartsAt)
	})
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
