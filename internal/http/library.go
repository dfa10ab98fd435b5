package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/animeshelf/library/internal/apperr"
	"github.com/animeshelf/library/internal/auth"
	"github.com/animeshelf/library/internal/entities"
	"github.com/animeshelf/library/internal/services"
)

const msgInvalidFetch = "Invalid fetch."

type imageSetRequest struct {
	ImageURL string `json:"image_url" binding:"required"`
}

type imagesRequest struct {
	JPG imageSetRequest `json:"jpg"`
}

type addAnimeRequest struct {
	Title   string              `json:"title" binding:"required"`
	Images  imagesRequest       `json:"images"`
	Rating  string              `json:"rating"`
	Score   *float64            `json:"score"`
	Genres  []entities.NamedTag `json:"genres"`
	Themes  []entities.NamedTag `json:"themes"`
	Creator string              `json:"creator"`
}

// LibraryController serves the /library endpoints.
type LibraryController struct {
	library *services.LibraryService
}

func NewLibraryController(library *services.LibraryService) *LibraryController {
	return &LibraryController{library: library}
}

// GetAnimesByUserID lists a user's whole library.
func (lc *LibraryController) GetAnimesByUserID(c *gin.Context) {
	animes, err := lc.library.GetAnimesByUserID(c.Request.Context(), c.Param("uid"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"animes": animes})
}

// GetAnimesByTitle lists the user's animes whose title contains :title.
func (lc *LibraryController) GetAnimesByTitle(c *gin.Context) {
	animes, err := lc.library.GetAnimesByTitle(c.Request.Context(), c.Param("uid"), c.Param("title"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"animes": animes})
}

// AddAnime adds an anime to the creator's library. The creator is taken from
// the body and falls back to :uid; it must be the authenticated user.
func (lc *LibraryController) AddAnime(c *gin.Context) {
	var req addAnimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.FromBinding(msgInvalidFetch, err))
		return
	}

	creatorID := req.Creator
	if creatorID == "" {
		creatorID = c.Param("uid")
	}
	if creatorID != auth.GetUserID(c) {
		_ = c.Error(apperr.Forbidden("You are not allowed to add animes to this library."))
		return
	}

	anime, err := lc.library.AddAnime(c.Request.Context(), services.AddAnimeInput{
		Title:     req.Title,
		Images:    entities.Images{JPG: entities.ImageSet{ImageURL: req.Images.JPG.ImageURL}},
		Rating:    req.Rating,
		Score:     req.Score,
		Genres:    req.Genres,
		Themes:    req.Themes,
		CreatorID: creatorID,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	respondCreated(c, gin.H{"addedAnime": anime})
}

// DeleteAnime removes :aid on behalf of the authenticated user. :uid is not
// trusted for ownership.
func (lc *LibraryController) DeleteAnime(c *gin.Context) {
	if err := lc.library.DeleteAnime(c.Request.Context(), c.Param("aid"), auth.GetUserID(c)); err != nil {
		_ = c.Error(err)
		return
	}
	respondMessage(c, "Anime Deleted.")
}
