package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"socialblaster/internal/entity"
	"socialblaster/internal/publisher"
	"socialblaster/internal/repo"
	"socialblaster/pkg/logger"
	"socialblaster/pkg/queue"
)

const pendingMessage = "Publishing in progress..."

type PublishUseCase interface {
	// Publish fans out one publish attempt per selected platform. It
	// returns the freshly created pending results synchronously; the
	// attempts themselves run detached and are observed via GetPostResults.
	Publish(postID int) ([]*entity.PostResult, error)
}

type publishUseCase struct {
	postRepo    repo.PostRepository
	publisher   publisher.Publisher
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewPublishUseCase(
	postRepo repo.PostRepository,
	pub publisher.Publisher,
	queueClient *queue.Client,
	logger *logger.Logger,
) PublishUseCase {
	return &publishUseCase{
		postRepo:    postRepo,
		publisher:   pub,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *publishUseCase) Publish(postID int) ([]*entity.PostResult, error) {
	post, err := uc.postRepo.GetPost(postID)
	if err != nil {
		return nil, err
	}

	// Claiming the post is one atomic compare-and-swap, not a read followed
	// by a write: of any number of concurrent dispatches exactly one observes
	// draft and wins; the rest fail here with ErrInvalidState and create no
	// results. Re-publishing a post that already left draft is rejected the
	// same way rather than resumed.
	if err := uc.postRepo.TransitionPost(postID, entity.PostStatusDraft, entity.PostStatusPosting); err != nil {
		return nil, err
	}

	results := make([]*entity.PostResult, len(post.Platforms))
	for i, platformID := range post.Platforms {
		results[i] = &entity.PostResult{
			PostID:   postID,
			Platform: platformID,
			Status:   entity.ResultStatusPending,
			Message:  pendingMessage,
		}
	}

	// The whole batch must be durably visible before any attempt starts and
	// before this call returns, so a caller polling right away sees all N
	// pending rows.
	if err := uc.postRepo.CreatePostResults(results); err != nil {
		return nil, fmt.Errorf("failed to create post results: %w", err)
	}

	uc.logger.Info("publishing post %d to %d platforms", postID, len(results))
	go uc.fanOut(post, results)

	return results, nil
}

// fanOut runs one detached attempt per result and reconciles the parent post
// once every attempt has finished. The WaitGroup is the completion barrier:
// reconciliation is a single well-defined point, not an incidental side
// effect of the last finisher.
func (uc *publishUseCase) fanOut(post *entity.Post, results []*entity.PostResult) {
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, result := range results {
		wg.Add(1)
		go func(result *entity.PostResult) {
			defer wg.Done()
			uc.attempt(ctx, post, result)
		}(result)
	}
	wg.Wait()

	uc.reconcile(post)
}

// attempt publishes to one platform and records the outcome on that one
// result. Any failure, including a panicking publisher, stays contained
// here so sibling attempts keep running.
func (uc *publishUseCase) attempt(ctx context.Context, post *entity.Post, result *entity.PostResult) {
	outcome, err := uc.safePublish(ctx, result.Platform, post.Content, post.MediaURLs)
	if err != nil {
		message := fmt.Sprintf("Failed to post to %s: %v", result.Platform, err)
		if updateErr := uc.postRepo.UpdatePostResult(result.ID, entity.ResultStatusFailed, message, ""); updateErr != nil {
			uc.logger.Error("failed to record failure for result %d: %v", result.ID, updateErr)
		}
		return
	}

	status := entity.ResultStatusFailed
	if outcome.Success {
		status = entity.ResultStatusSuccess
	}
	if updateErr := uc.postRepo.UpdatePostResult(result.ID, status, outcome.Message, outcome.ExternalID); updateErr != nil {
		uc.logger.Error("failed to record outcome for result %d: %v", result.ID, updateErr)
	}
}

// safePublish shields the fan-out from a misbehaving Publisher: a panic is
// surfaced as an ordinary error and recorded as a failed result.
func (uc *publishUseCase) safePublish(ctx context.Context, platformID, content string, mediaURLs []string) (outcome *publisher.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = nil
			err = fmt.Errorf("unexpected error: %v", r)
		}
	}()

	outcome, err = uc.publisher.Publish(ctx, platformID, content, mediaURLs)
	if err == nil && outcome == nil {
		err = fmt.Errorf("publisher returned no outcome")
	}
	return outcome, err
}

// reconcile re-reads the results and completes the post once every attempt
// is terminal. UpdatePostStatus treats a repeated completed transition as a
// no-op, so concurrent reconcilers cannot double-transition the post.
func (uc *publishUseCase) reconcile(post *entity.Post) {
	results, err := uc.postRepo.GetPostResults(post.ID)
	if err != nil {
		uc.logger.Error("failed to read results for post %d: %v", post.ID, err)
		return
	}

	succeeded, failed := 0, 0
	for _, result := range results {
		switch result.Status {
		case entity.ResultStatusSuccess:
			succeeded++
		case entity.ResultStatusFailed:
			failed++
		default:
			// An attempt is still in flight; a later finisher reconciles.
			return
		}
	}

	if err := uc.postRepo.UpdatePostStatus(post.ID, entity.PostStatusCompleted); err != nil {
		uc.logger.Error("failed to complete post %d: %v", post.ID, err)
		return
	}

	uc.logger.Info("post %d completed: %d succeeded, %d failed", post.ID, succeeded, failed)

	if uc.queueClient != nil {
		event := queue.PublishEvent{
			PostID:    post.ID,
			UserID:    post.UserID,
			Succeeded: succeeded,
			Failed:    failed,
			Timestamp: time.Now(),
		}
		if err := uc.queueClient.PublishPostEvent(event); err != nil {
			uc.logger.Error("failed to emit completion event for post %d: %v", post.ID, err)
		}
	}
}
