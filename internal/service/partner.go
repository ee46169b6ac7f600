package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sportivo/platform/internal/domain"
	"github.com/sportivo/platform/internal/repository"
)

// PartnerService handles find-a-sport-partner posts and their participants.
type PartnerService struct {
	db     repository.DB
	posts  repository.PartnerRepository
	outbox repository.OutboxRepository
}

// NewPartnerService creates a new PartnerService.
func NewPartnerService(db repository.DB, posts repository.PartnerRepository, outbox repository.OutboxRepository) *PartnerService {
	return &PartnerService{db: db, posts: posts, outbox: outbox}
}

// PartnerInput holds the post creation fields.
type PartnerInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Tanggal     string `json:"tanggal"`
	JamMulai    string `json:"jam_mulai"`
	JamSelesai  string `json:"jam_selesai"`
	Lokasi      string `json:"lokasi"`
}

// Create publishes a new partner post by the actor.
func (s *PartnerService) Create(ctx context.Context, creatorID uuid.UUID, input PartnerInput) (*domain.PartnerPost, error) {
	post := &domain.PartnerPost{
		ID:          uuid.New(),
		CreatorID:   creatorID,
		Title:       input.Title,
		Description: input.Description,
		Category:    domain.Sport(input.Category),
		Tanggal:     input.Tanggal,
		JamMulai:    input.JamMulai,
		JamSelesai:  input.JamSelesai,
		Lokasi:      input.Lokasi,
	}
	if appErr := post.Validate(); appErr != nil {
		return nil, appErr
	}
	if err := s.posts.Create(ctx, s.db, post); err != nil {
		return nil, domain.ErrInternal("create post", err)
	}
	return post, nil
}

// PostView is a post with its computed participant total.
type PostView struct {
	domain.PartnerPost
	TotalParticipants int64 `json:"total_participants"`
}

// Get returns one post with the computed participant count.
func (s *PartnerService) Get(ctx context.Context, id uuid.UUID) (*PostView, error) {
	post, err := s.posts.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, domain.ErrInternal("find post", err)
	}
	if post == nil {
		return nil, domain.ErrNotFound("post", id.String())
	}
	count, err := s.posts.CountParticipants(ctx, s.db, id)
	if err != nil {
		return nil, domain.ErrInternal("count participants", err)
	}
	return &PostView{PartnerPost: *post, TotalParticipants: count}, nil
}

// List returns all posts newest-first, each with its participant total.
func (s *PartnerService) List(ctx context.Context) ([]PostView, error) {
	posts, err := s.posts.List(ctx, s.db)
	if err != nil {
		return nil, domain.ErrInternal("list posts", err)
	}
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		count, err := s.posts.CountParticipants(ctx, s.db, p.ID)
		if err != nil {
			return nil, domain.ErrInternal("count participants", err)
		}
		views = append(views, PostView{PartnerPost: p, TotalParticipants: count})
	}
	return views, nil
}

// Join adds the actor to the post's participants. Creators cannot join their
// own post and duplicate joins conflict.
func (s *PartnerService) Join(ctx context.Context, postID, actorID uuid.UUID) error {
	post, err := s.posts.FindByID(ctx, s.db, postID)
	if err != nil {
		return domain.ErrInternal("find post", err)
	}
	if post == nil {
		return domain.ErrNotFound("post", postID.String())
	}
	if post.CreatorID == actorID {
		return domain.ErrValidation("Anda tidak bisa bergabung dengan post sendiri")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	joined, err := s.posts.Join(ctx, tx, postID, actorID)
	if err != nil {
		return domain.ErrInternal("join post", err)
	}
	if !joined {
		return domain.ErrConflict("Anda sudah bergabung dengan post ini")
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewPartnerJoinedEvent(postID, actorID)); err != nil {
		return domain.ErrInternal("record event", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}

	return nil
}

// Leave removes the actor from the participants. Leaving a post the actor
// never joined still succeeds.
func (s *PartnerService) Leave(ctx context.Context, postID, actorID uuid.UUID) error {
	post, err := s.posts.FindByID(ctx, s.db, postID)
	if err != nil {
		return domain.ErrInternal("find post", err)
	}
	if post == nil {
		return domain.ErrNotFound("post", postID.String())
	}

	wasParticipant, err := s.posts.IsParticipant(ctx, s.db, postID, actorID)
	if err != nil {
		return domain.ErrInternal("check participant", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.posts.Leave(ctx, tx, postID, actorID); err != nil {
		return domain.ErrInternal("leave post", err)
	}
	if wasParticipant {
		if err := s.outbox.Insert(ctx, tx, domain.NewPartnerLeftEvent(postID, actorID)); err != nil {
			return domain.ErrInternal("record event", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}

	return nil
}

// Participants returns the post's participants.
func (s *PartnerService) Participants(ctx context.Context, postID uuid.UUID) ([]domain.User, error) {
	post, err := s.posts.FindByID(ctx, s.db, postID)
	if err != nil {
		return nil, domain.ErrInternal("find post", err)
	}
	if post == nil {
		return nil, domain.ErrNotFound("post", postID.String())
	}
	users, err := s.posts.ListParticipants(ctx, s.db, postID)
	if err != nil {
		return nil, domain.ErrInternal("list participants", err)
	}
	return users, nil
}

// Delete removes the post. Creator only.
func (s *PartnerService) Delete(ctx context.Context, postID, actorID uuid.UUID) error {
	post, err := s.posts.FindByID(ctx, s.db, postID)
	if err != nil {
		return domain.ErrInternal("find post", err)
	}
	if post == nil {
		return domain.ErrNotFound("post", postID.String())
	}
	if post.CreatorID != actorID {
		return domain.ErrForbidden("Hanya pembuat post yang dapat menghapus post ini")
	}
	if err := s.posts.Delete(ctx, s.db, postID); err != nil {
		return domain.ErrInternal("delete post", err)
	}
	return nil
}
