package service_test

import (
	"context"
	"sort"
	"sync"

	"quizdesk/internal/cache"
	"quizdesk/internal/model"
	"quizdesk/internal/repository"
)

// In-memory repository fakes implementing the mongo repo contracts: GetByID
// returns nil for missing ids, ReplaceVersioned enforces the version stamp.

type fakeQuizRepo struct {
	mu      sync.Mutex
	quizzes map[string]*model.Quiz
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: make(map[string]*model.Quiz)}
}

func (f *fakeQuizRepo) Create(_ context.Context, quiz *model.Quiz) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *quiz
	f.quizzes[quiz.ID] = &cp
	return nil
}

func (f *fakeQuizRepo) GetByID(_ context.Context, id string) (*model.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, nil
	}
	cp := *quiz
	return &cp, nil
}

func (f *fakeQuizRepo) ListActive(_ context.Context) ([]*model.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Quiz
	for _, quiz := range f.quizzes {
		if quiz.IsActive {
			cp := *quiz
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeQuizRepo) Deactivate(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	quiz, ok := f.quizzes[id]
	if !ok {
		return false, nil
	}
	quiz.IsActive = false
	return true, nil
}

type fakeResultRepo struct {
	mu      sync.Mutex
	results map[string]*model.AttemptResult

	// forceConflicts makes the next n ReplaceVersioned calls fail.
	forceConflicts int
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{results: make(map[string]*model.AttemptResult)}
}

func copyResult(r *model.AttemptResult) *model.AttemptResult {
	cp := *r
	cp.Responses = append([]model.Response(nil), r.Responses...)
	cp.DetailedResults = append([]model.DetailedResult(nil), r.DetailedResults...)
	cp.Evaluations = append([]model.Evaluation(nil), r.Evaluations...)
	return &cp
}

func (f *fakeResultRepo) Create(_ context.Context, result *model.AttemptResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[result.ID] = copyResult(result)
	return nil
}

func (f *fakeResultRepo) GetByID(_ context.Context, id string) (*model.AttemptResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result, ok := f.results[id]
	if !ok {
		return nil, nil
	}
	return copyResult(result), nil
}

func (f *fakeResultRepo) ReplaceVersioned(_ context.Context, result *model.AttemptResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forceConflicts > 0 {
		f.forceConflicts--
		return repository.ErrVersionConflict
	}
	stored, ok := f.results[result.ID]
	if !ok || stored.Version != result.Version {
		return repository.ErrVersionConflict
	}
	result.Version++
	f.results[result.ID] = copyResult(result)
	return nil
}

func (f *fakeResultRepo) SetPublished(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result, ok := f.results[id]
	if !ok {
		return false, nil
	}
	result.IsPublished = true
	return true, nil
}

func (f *fakeResultRepo) PublishAllEvaluated(_ context.Context, quizID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, result := range f.results {
		if result.QuizID == quizID && result.IsEvaluated && !result.IsPublished {
			result.IsPublished = true
			count++
		}
	}
	return count, nil
}

func (f *fakeResultRepo) ListByUser(_ context.Context, userID string, publishedOnly bool) ([]*model.AttemptResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.AttemptResult
	for _, result := range f.results {
		if result.UserID != userID {
			continue
		}
		if publishedOnly && !result.IsPublished {
			continue
		}
		out = append(out, copyResult(result))
	}
	return out, nil
}

func (f *fakeResultRepo) ListPublishedByQuiz(_ context.Context, quizID string) ([]*model.AttemptResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.AttemptResult
	for _, result := range f.results {
		if result.QuizID == quizID && result.IsPublished {
			out = append(out, copyResult(result))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Percentage > out[j].Percentage })
	return out, nil
}

func (f *fakeResultRepo) ListPendingEvaluation(_ context.Context) ([]*model.AttemptResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.AttemptResult
	for _, result := range f.results {
		if !result.IsEvaluated {
			out = append(out, copyResult(result))
		}
	}
	return out, nil
}

func (f *fakeResultRepo) ListAll(_ context.Context) ([]*model.AttemptResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.AttemptResult
	for _, result := range f.results {
		out = append(out, copyResult(result))
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeLeaderboard struct {
	mu      sync.Mutex
	entries map[string]map[string]cache.LeaderboardEntry // quizID -> resultID -> entry
}

func newFakeLeaderboard() *fakeLeaderboard {
	return &fakeLeaderboard{entries: make(map[string]map[string]cache.LeaderboardEntry)}
}

func (f *fakeLeaderboard) Add(_ context.Context, quizID string, entry cache.LeaderboardEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.entries[quizID] == nil {
		f.entries[quizID] = make(map[string]cache.LeaderboardEntry)
	}
	entry.Rank = 0
	f.entries[quizID][entry.ResultID] = entry
	return nil
}

func (f *fakeLeaderboard) Top(_ context.Context, quizID string, limit int) ([]cache.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []cache.LeaderboardEntry
	for _, entry := range f.entries[quizID] {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Percentage > out[j].Percentage })
	if len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

func (f *fakeLeaderboard) Clear(_ context.Context, quizID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, quizID)
	return nil
}
