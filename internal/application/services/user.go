package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Asror571/insta-server/internal/application/ports"
	"github.com/Asror571/insta-server/internal/domain/post"
	domain "github.com/Asror571/insta-server/internal/domain/user"
	"github.com/Asror571/insta-server/internal/infrastructure/mq"
)

type UserService struct {
	userRepository domain.Repository
	postRepository post.Repository
	bcryptCost     int
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	postRepository post.Repository,
	bcryptCost int,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		postRepository: postRepository,
		bcryptCost:     bcryptCost,
		mq:             mq,
		mCounter:       mCounter,
	}
}

func (us *UserService) FindUserByID(ctx context.Context, uuid domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return u, nil
}

// Register stores the new user and guarantees the empty post aggregate
// exists for the username before returning. Uniqueness is enforced by the
// store, not by a racy pre-check.
func (us *UserService) Register(ctx context.Context, req ports.RegisterRequest) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), us.bcryptCost)
	if err != nil {
		return nil, err
	}

	uRet, err := us.userRepository.CreateUser(ctx, domain.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Email:        req.Email,
		FullName:     req.FullName,
	})
	if err != nil {
		return nil, err
	}

	if err = us.postRepository.EnsureAggregate(ctx, uRet.Username); err != nil {
		return nil, err
	}

	if us.mq != nil {
		us.mq.GetInputChan() <- mq.Event{
			Id:       uuid.New(),
			TS:       time.Now(),
			Action:   mq.ActionUserRegistered,
			Username: uRet.Username,
		}
	}

	us.mCounter.WithLabelValues("users_registered_total").Inc()

	return uRet, nil
}
