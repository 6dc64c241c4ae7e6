package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zed-Kryp/BlogSphere/internal/config"
	"github.com/Zed-Kryp/BlogSphere/internal/dynamo"
	"github.com/Zed-Kryp/BlogSphere/internal/handler"
	"github.com/Zed-Kryp/BlogSphere/internal/model"
	"github.com/Zed-Kryp/BlogSphere/internal/redis"
	"github.com/Zed-Kryp/BlogSphere/internal/repository"
	"github.com/Zed-Kryp/BlogSphere/internal/service"
	"github.com/Zed-Kryp/BlogSphere/internal/storage"
)

// Run builds the full dependency graph and serves HTTP until interrupted.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()

	db, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("dynamodb client: %w", err)
	}

	store, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		return fmt.Errorf("s3 store: %w", err)
	}

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis client: %w", err)
	}
	defer redisClient.Close()
	if err := redisClient.Ping(ctx); err != nil {
		return err
	}

	registry := repository.NewRegistry(db, cfg.Tables)

	usersTable, err := registry.Table(model.ResourceUsers)
	if err != nil {
		return err
	}
	profilesTable, err := registry.Table(model.ResourceUserProfiles)
	if err != nil {
		return err
	}
	postsTable, err := registry.Table(model.ResourceBlogPosts)
	if err != nil {
		return err
	}
	commentsTable, err := registry.Table(model.ResourcePostComments)
	if err != nil {
		return err
	}
	reactionsTable, err := registry.Table(model.ResourcePostReactions)
	if err != nil {
		return err
	}
	sharesTable, err := registry.Table(model.ResourcePostShares)
	if err != nil {
		return err
	}
	followSpec, err := cfg.TableSpec(model.ResourceUserFollows)
	if err != nil {
		return err
	}
	bookmarkSpec, err := cfg.TableSpec(model.ResourcePostBookmarks)
	if err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(usersTable)
	profileRepo := repository.NewProfileRepository(profilesTable)
	postRepo := repository.NewPostRepository(postsTable)
	engagementRepo := repository.NewEngagementRepository(commentsTable, reactionsTable, sharesTable)
	followRepo := repository.NewFollowRepository(db, followSpec)
	bookmarkRepo := repository.NewBookmarkRepository(db, bookmarkSpec)
	resetTokenRepo := repository.NewResetTokenRepository(redisClient)

	authService := service.NewAuthService(userRepo, profileRepo, resetTokenRepo, cfg)
	userService := service.NewUserService(userRepo, profileRepo)
	resourceService := service.NewResourceService(registry, profileRepo, postRepo, engagementRepo)
	postService := service.NewPostService(postRepo, userRepo, engagementRepo, followRepo, bookmarkRepo)
	followService := service.NewFollowService(followRepo, userRepo, profileRepo)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, postRepo, userRepo)
	mediaService := service.NewMediaService(store, profileRepo, cfg)

	router := NewRouter(Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Users:     handler.NewUserHandler(userService),
		Resources: handler.NewResourceHandler(resourceService),
		Posts:     handler.NewPostHandler(postService),
		Follows:   handler.NewFollowHandler(followService),
		Bookmarks: handler.NewBookmarkHandler(bookmarkService),
		Media:     handler.NewMediaHandler(mediaService),
	}, cfg.JWTSecret)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on port %s", cfg.ServerPort)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("Received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
