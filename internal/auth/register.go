package auth

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/angelmondragon/artesanos-backend/internal/users"
	"github.com/angelmondragon/artesanos-backend/pkg/config"
	"github.com/angelmondragon/artesanos-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/angelmondragon/artesanos-backend/pkg/security"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// RegisterService creates a user together with its marketplace profile.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if params.PasswordConfig.MinLength <= 0 {
		params.PasswordConfig.MinLength = 8
	}
	return &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error) {
	if !req.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var created *users.UserDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)

		problems := formProblems(req)
		if taken, err := repo.UsernameTaken(ctx, username); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check username")
		} else if taken {
			problems["username"] = append(problems["username"], "El nombre de usuario ya está en uso.")
		}
		if taken, err := repo.EmailTaken(ctx, email); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
		} else if taken {
			problems["email"] = append(problems["email"], "El correo electrónico ya está registrado.")
		}
		if issues := security.PasswordProblems(req.Password, s.passwordCfg.MinLength); len(issues) > 0 {
			problems["password"] = issues
		}
		if req.Password != req.PasswordConfirm {
			problems["password_confirm"] = append(problems["password_confirm"], "Las contraseñas no coinciden.")
		}
		if len(problems) > 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "registration rejected").WithDetails(problems)
		}

		hash, err := security.HashPassword(req.Password, s.passwordCfg)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}

		user, err := repo.Create(ctx, users.CreateUserDTO{
			Username:     username,
			Email:        email,
			PasswordHash: hash,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "username or email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}

		profile, err := repo.CreateProfile(ctx, users.CreateProfileDTO{
			UserID:  user.ID,
			Role:    req.Role,
			Phone:   trimmed(req.Phone),
			Address: trimmed(req.Address),
			City:    trimmed(req.City),
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create profile")
		}

		user.Profile = profile
		created = users.FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// formProblems reports the struct tag failures in the same shape as the uniqueness checks
// so the caller sees every problem at once.
func formProblems(req RegisterRequest) map[string][]string {
	problems := map[string][]string{}
	var errs validator.ValidationErrors
	if err := formValidator.Struct(req); errors.As(err, &errs) {
		for _, fe := range errs {
			problems[fe.Field()] = append(problems[fe.Field()], fieldMessage(fe))
		}
	}
	return problems
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio."
	case "email":
		return "Introduce un correo electrónico válido."
	case "max":
		return fmt.Sprintf("Máximo %s caracteres.", fe.Param())
	}
	return "Valor no válido."
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}
	return &v
}
