package services

import (
	"context"
	"errors"
	"strings"

	"github.com/animeshelf/library/internal/apperr"
	"github.com/animeshelf/library/internal/database"
	"github.com/animeshelf/library/internal/entities"
)

// Audit actions for library changes.
const (
	ActionAnimeAdd    = "anime_add"
	ActionAnimeDelete = "anime_delete"
)

// AddAnimeInput is the payload for adding an anime to a user's library.
type AddAnimeInput struct {
	Title     string
	Images    entities.Images
	Rating    string
	Score     *float64
	Genres    []entities.NamedTag
	Themes    []entities.NamedTag
	CreatorID string
}

// LibraryService manages per-user anime libraries.
type LibraryService struct {
	users  UserReader
	animes AnimeStore
	audit  LibraryAuditor
}

// NewLibraryService creates a library service. auditor may be nil.
func NewLibraryService(users UserReader, animes AnimeStore, auditor LibraryAuditor) *LibraryService {
	return &LibraryService{users: users, animes: animes, audit: auditor}
}

// GetAnimesByUserID returns every anime in the user's library.
func (s *LibraryService) GetAnimesByUserID(ctx context.Context, userID string) ([]entities.Anime, error) {
	if err := s.requireUser(ctx, userID, "Could not find an anime for user ID."); err != nil {
		return nil, err
	}

	animes, err := s.animes.GetAnimesByCreator(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("Fetching animes failed, please try again later.", err)
	}
	return animes, nil
}

// GetAnimesByTitle returns the user's animes whose title contains pattern,
// ignoring case.
func (s *LibraryService) GetAnimesByTitle(ctx context.Context, userID, pattern string) ([]entities.Anime, error) {
	if err := s.requireUser(ctx, userID, "Could not find user for provided id"); err != nil {
		return nil, err
	}

	animes, err := s.animes.SearchAnimesByTitle(ctx, userID, pattern)
	if err != nil {
		return nil, apperr.Internal("Fetching animes failed, please try again later.", err)
	}
	return animes, nil
}

// AddAnime creates an anime in the creator's library.
func (s *LibraryService) AddAnime(ctx context.Context, in AddAnimeInput) (*entities.Anime, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Images.JPG.ImageURL) == "" {
		return nil, apperr.Validation("Invalid fetch.")
	}

	if err := s.requireUser(ctx, in.CreatorID, "Could not find user for provided id"); err != nil {
		return nil, err
	}

	// Fast path only; the unique index decides under concurrency.
	_, err := s.animes.GetAnimeByTitle(ctx, in.CreatorID, in.Title)
	switch {
	case err == nil:
		return nil, apperr.Conflict("Anime exists already.")
	case !errors.Is(err, database.ErrNotFound):
		return nil, apperr.Internal("Adding anime failed, please try again later.", err)
	}

	anime := &entities.Anime{
		Title:     in.Title,
		Images:    in.Images,
		Rating:    in.Rating,
		Score:     in.Score,
		Genres:    in.Genres,
		Themes:    in.Themes,
		CreatorID: in.CreatorID,
	}

	err = s.animes.AddAnime(ctx, anime)
	switch {
	case errors.Is(err, database.ErrDuplicate):
		return nil, apperr.Conflict("Anime exists already.")
	case errors.Is(err, database.ErrNotFound):
		return nil, apperr.NotFound("Could not find user for provided id")
	case err != nil:
		return nil, apperr.Internal("Adding anime failed, please try again later.", err)
	}

	s.logLibrary(in.CreatorID, ActionAnimeAdd, anime.ID, anime.Title, nil)
	return anime, nil
}

// DeleteAnime removes an anime on behalf of callerUserID, who must own it.
func (s *LibraryService) DeleteAnime(ctx context.Context, animeID, callerUserID string) error {
	anime, err := s.animes.GetAnimeByID(ctx, animeID)
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound("Could not find the anime.")
	}
	if err != nil {
		return apperr.Internal("Deleting anime failed, please try again later.", err)
	}

	if anime.CreatorID != callerUserID {
		forbidden := apperr.Forbidden("You are not allowed to delete this anime.")
		s.logLibrary(callerUserID, ActionAnimeDelete, anime.ID, anime.Title, forbidden)
		return forbidden
	}

	err = s.animes.DeleteAnime(ctx, anime.ID, callerUserID)
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound("Could not find the anime.")
	}
	if err != nil {
		return apperr.Internal("Deleting anime failed, please try again later.", err)
	}

	s.logLibrary(callerUserID, ActionAnimeDelete, anime.ID, anime.Title, nil)
	return nil
}

func (s *LibraryService) requireUser(ctx context.Context, userID, notFoundMsg string) error {
	_, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound(notFoundMsg)
	}
	if err != nil {
		return apperr.Internal("Fetching user failed, please try again later.", err)
	}
	return nil
}

func (s *LibraryService) logLibrary(userID, action, animeID, title string, err error) {
	if s.audit != nil {
		s.audit.LogLibrary(userID, action, animeID, title, err)
	}
}
