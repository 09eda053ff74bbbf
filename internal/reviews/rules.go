package reviews

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/artesanos-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// Rules checks review input against the configured bounds.
type Rules struct {
	cfg      config.ReviewConfig
	validate *validator.Validate
}

// NewRules builds the rule set. Zero values fall back to the defaults.
func NewRules(cfg config.ReviewConfig) Rules {
	defaults := config.DefaultReviewConfig()
	if cfg.RatingMin == 0 && cfg.RatingMax == 0 {
		cfg.RatingMin, cfg.RatingMax = defaults.RatingMin, defaults.RatingMax
	}
	if cfg.CommentMaxLength <= 0 {
		cfg.CommentMaxLength = defaults.CommentMaxLength
	}
	return Rules{cfg: cfg, validate: validator.New()}
}

// Check returns a validation error listing every field that breaks a rule.
func (r Rules) Check(input ReviewInput) error {
	problems := map[string]string{}

	ratingTag := fmt.Sprintf("min=%d,max=%d", r.cfg.RatingMin, r.cfg.RatingMax)
	if err := r.validate.Var(input.Rating, ratingTag); err != nil {
		problems["rating"] = fmt.Sprintf("La calificación debe estar entre %d y %d.", r.cfg.RatingMin, r.cfg.RatingMax)
	}

	commentTag := fmt.Sprintf("max=%d", r.cfg.CommentMaxLength)
	if r.cfg.CommentRequired {
		commentTag = "required," + commentTag
	}
	if err := r.validate.Var(strings.TrimSpace(input.Comment), commentTag); err != nil {
		if r.cfg.CommentRequired && strings.TrimSpace(input.Comment) == "" {
			problems["comment"] = "El comentario es obligatorio."
		} else {
			problems["comment"] = fmt.Sprintf("El comentario no puede superar %d caracteres.", r.cfg.CommentMaxLength)
		}
	}

	if len(problems) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "review rejected").WithDetails(problems)
	}
	return nil
}
