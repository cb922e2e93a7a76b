package statusupdate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"project-tracker/internal/global/jwt"
	"project-tracker/internal/global/response"
	"project-tracker/internal/model"
	"project-tracker/internal/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// fakeData 内存中的表数据
type fakeData struct {
	projects map[uint]model.Project
	updates  []model.ProjectStatusUpdate
	docs     []model.SupportingDocument
	nextID   uint
}

func (d *fakeData) clone() *fakeData {
	cp := &fakeData{
		projects: make(map[uint]model.Project, len(d.projects)),
		updates:  append([]model.ProjectStatusUpdate(nil), d.updates...),
		docs:     append([]model.SupportingDocument(nil), d.docs...),
		nextID:   d.nextID,
	}
	for k, v := range d.projects {
		cp.projects[k] = v
	}
	return cp
}

// txStore 事务内视图，不加锁
type txStore struct{ d *fakeData }

func (t *txStore) Projects() repository.ProjectRepository           { return txProjects{t.d} }
func (t *txStore) StatusUpdates() repository.StatusUpdateRepository { return txUpdates{t.d} }
func (t *txStore) Documents() repository.DocumentRepository         { return txDocs{t.d} }
func (t *txStore) WithTransaction(ctx context.Context, fn func(repository.Store) error) error {
	return fn(t)
}

type txProjects struct{ d *fakeData }

func (r txProjects) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	p, ok := r.d.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (r txProjects) UpdateStatus(ctx context.Context, id uint, status model.Status) error {
	p, ok := r.d.projects[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Status = status
	r.d.projects[id] = p
	return nil
}

type txUpdates struct{ d *fakeData }

func (r txUpdates) Create(ctx context.Context, update *model.ProjectStatusUpdate) error {
	r.d.nextID++
	update.ID = r.d.nextID
	update.CreatedAt = time.Now()
	r.d.updates = append(r.d.updates, *update)
	return nil
}

func (r txUpdates) ListByProject(ctx context.Context, projectID uint) ([]model.ProjectStatusUpdate, error) {
	var result []model.ProjectStatusUpdate
	for _, u := range r.d.updates {
		if u.ProjectID == projectID {
			result = append(result, u)
		}
	}
	return result, nil
}

type txDocs struct{ d *fakeData }

func (r txDocs) Create(ctx context.Context, doc *model.SupportingDocument) error {
	r.d.nextID++
	doc.ID = r.d.nextID
	doc.CreatedAt = time.Now()
	r.d.docs = append(r.d.docs, *doc)
	return nil
}

func (r txDocs) ExistsByFile(ctx context.Context, file string) (bool, error) {
	for _, doc := range r.d.docs {
		if doc.File == file {
			return true, nil
		}
	}
	return false, nil
}

// fakeStore 模拟持久化层：事务整体加锁，失败时恢复快照
type fakeStore struct {
	mu   sync.Mutex
	data *fakeData
}

func newFakeStore(projects ...model.Project) *fakeStore {
	data := &fakeData{projects: make(map[uint]model.Project)}
	for _, p := range projects {
		data.projects[p.ID] = p
	}
	return &fakeStore{data: data}
}

func (s *fakeStore) Projects() repository.ProjectRepository           { return lockedProjects{s} }
func (s *fakeStore) StatusUpdates() repository.StatusUpdateRepository { return lockedUpdates{s} }
func (s *fakeStore) Documents() repository.DocumentRepository         { return lockedDocs{s} }

func (s *fakeStore) WithTransaction(ctx context.Context, fn func(repository.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.data.clone()
	if err := fn(&txStore{d: s.data}); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *fakeStore) project(t *testing.T, id uint) model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data.projects[id]
	require.True(t, ok)
	return p
}

type lockedProjects struct{ s *fakeStore }

func (r lockedProjects) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return txProjects{r.s.data}.FindByID(ctx, id)
}

func (r lockedProjects) UpdateStatus(ctx context.Context, id uint, status model.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return txProjects{r.s.data}.UpdateStatus(ctx, id, status)
}

type lockedUpdates struct{ s *fakeStore }

func (r lockedUpdates) Create(ctx context.Context, update *model.ProjectStatusUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return txUpdates{r.s.data}.Create(ctx, update)
}

func (r lockedUpdates) ListByProject(ctx context.Context, projectID uint) ([]model.ProjectStatusUpdate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return txUpdates{r.s.data}.ListByProject(ctx, projectID)
}

type lockedDocs struct{ s *fakeStore }

func (r lockedDocs) Create(ctx context.Context, doc *model.SupportingDocument) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return txDocs{r.s.data}.Create(ctx, doc)
}

func (r lockedDocs) ExistsByFile(ctx context.Context, file string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return txDocs{r.s.data}.ExistsByFile(ctx, file)
}

// fakeBlobs 内存对象存储，可指定某个 key 写入失败
type fakeBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
	failOn  string
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: make(map[string][]byte)}
}

func (b *fakeBlobs) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	if key == b.failOn {
		return errors.New("write refused")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = data
	return nil
}

func (b *fakeBlobs) URL(ctx context.Context, key string) (string, error) {
	return "https://files.test/" + key, nil
}

func alice() *jwt.Claims {
	return &jwt.Claims{Payload: jwt.Payload{
		UserID:   7,
		Username: "alice",
		Email:    "alice@example.com",
		Role:     model.RoleMaker,
	}}
}

func pendingProject(id uint) model.Project {
	return model.Project{
		Model:  model.Model{ID: id},
		Name:   fmt.Sprintf("project-%d", id),
		Status: model.StatusPending,
	}
}

func fileOf(name, content string) File {
	return File{Name: name, ContentType: "application/pdf", Content: bytes.NewReader([]byte(content))}
}

func TestSubmitPropagatesStatusAndStoresDocument(t *testing.T) {
	store := newFakeStore(pendingProject(1))
	blobs := newFakeBlobs()

	view, failure := Submit(context.Background(), store, blobs, alice(), SubmitInput{
		ProjectID:     1,
		Status:        "completed",
		ActionMessage: "done",
		Files:         []File{fileOf("report.pdf", "report body")},
	})
	require.Nil(t, failure)

	require.Equal(t, model.StatusCompleted, view.Status)
	require.Equal(t, uint(1), view.Project)
	require.Equal(t, "done", view.ActionMessage)
	require.Equal(t, model.FileTypePDF, view.FileType)
	require.NotNil(t, view.UpdatedBy)
	require.Equal(t, "alice", view.UpdatedBy.Username)
	require.Equal(t, "alice@example.com", view.UpdatedBy.Email)

	require.Len(t, view.Documents, 1)
	require.Equal(t, "https://files.test/supporting_documents/project_1/report.pdf", view.Documents[0].File)

	// 项目冗余状态已同步
	require.Equal(t, model.StatusCompleted, store.project(t, 1).Status)

	// 附件内容已写入存储
	require.Equal(t, []byte("report body"), blobs.objects["supporting_documents/project_1/report.pdf"])
	require.Len(t, store.data.updates, 1)
	require.Len(t, store.data.docs, 1)
}

func TestSubmitDocumentCountMatchesFiles(t *testing.T) {
	store := newFakeStore(pendingProject(1))
	blobs := newFakeBlobs()

	view, failure := Submit(context.Background(), store, blobs, alice(), SubmitInput{
		ProjectID: 1,
		Status:    "in_progress",
		Files: []File{
			fileOf("a.pdf", "aa"),
			fileOf("b.pdf", "bb"),
			fileOf("c.pdf", "cc"),
		},
	})
	require.Nil(t, failure)
	require.Len(t, view.Documents, 3)
	require.Len(t, store.data.docs, 3)
	require.Len(t, blobs.objects, 3)
}

func TestSubmitWithoutFiles(t *testing.T) {
	store := newFakeStore(pendingProject(1))

	view, failure := Submit(context.Background(), store, newFakeBlobs(), alice(), SubmitInput{
		ProjectID: 1,
		Status:    "on_hold",
	})
	require.Nil(t, failure)
	require.Empty(t, view.Documents)
	require.Equal(t, model.StatusOnHold, store.project(t, 1).Status)
}

func TestSubmitNormalizesLegacyActive(t *testing.T) {
	store := newFakeStore(pendingProject(1))

	view, failure := Submit(context.Background(), store, newFakeBlobs(), alice(), SubmitInput{
		ProjectID: 1,
		Status:    "active",
	})
	require.Nil(t, failure)
	require.Equal(t, model.StatusInProgress, view.Status)
	require.Equal(t, model.StatusInProgress, store.project(t, 1).Status)
}

func TestSubmitUnknownStatusWritesNothing(t *testing.T) {
	store := newFakeStore(pendingProject(1))

	_, failure := Submit(context.Background(), store, newFakeBlobs(), alice(), SubmitInput{
		ProjectID: 1,
		Status:    "archived",
	})
	require.NotNil(t, failure)
	require.True(t, errors.Is(failure, response.ErrInvalidRequest))

	require.Empty(t, store.data.updates)
	require.Empty(t, store.data.docs)
	require.Equal(t, model.StatusPending, store.project(t, 1).Status)
}

func TestSubmitMissingProjectWritesNothing(t *testing.T) {
	store := newFakeStore(pendingProject(1))

	_, failure := Submit(context.Background(), store, newFakeBlobs(), alice(), SubmitInput{
		Status: "completed",
	})
	require.NotNil(t, failure)
	require.True(t, errors.Is(failure, response.ErrInvalidRequest))
	require.Empty(t, store.data.updates)
}

func TestSubmitProjectNotFound(t *testing.T) {
	store := newFakeStore(pendingProject(1))

	_, failure := Submit(context.Background(), store, newFakeBlobs(), alice(), SubmitInput{
		ProjectID: 99,
		Status:    "completed",
	})
	require.NotNil(t, failure)
	require.True(t, errors.Is(failure, response.ErrNotFound))
	require.Empty(t, store.data.updates)
	require.Empty(t, store.data.docs)
}

func TestSubmitBlobFailureRollsBackEverything(t *testing.T) {
	store := newFakeStore(pendingProject(1))
	blobs := newFakeBlobs()
	blobs.failOn = "supporting_documents/project_1/b.pdf"

	_, failure := Submit(context.Background(), store, blobs, alice(), SubmitInput{
		ProjectID: 1,
		Status:    "completed",
		Files: []File{
			fileOf("a.pdf", "aa"),
			fileOf("b.pdf", "bb"),
		},
	})
	require.NotNil(t, failure)
	require.True(t, errors.Is(failure, response.ErrStorage))

	// 状态变更记录与附件记录全部回滚，项目状态保持不变
	require.Empty(t, store.data.updates)
	require.Empty(t, store.data.docs)
	require.Equal(t, model.StatusPending, store.project(t, 1).Status)
}

func TestSubmitResolvesFilenameCollisions(t *testing.T) {
	store := newFakeStore(pendingProject(1))
	blobs := newFakeBlobs()

	// 第一次提交占用 report.pdf
	_, failure := Submit(context.Background(), store, blobs, alice(), SubmitInput{
		ProjectID: 1,
		Status:    "in_progress",
		Files:     []File{fileOf("report.pdf", "v1")},
	})
	require.Nil(t, failure)

	// 第二次提交带两个同名文件，依次获得 _1、_2 后缀
	view, failure := Submit(context.Background(), store, blobs, alice(), SubmitInput{
		ProjectID: 1,
		Status:    "completed",
		Files: []File{
			fileOf("report.pdf", "v2"),
			fileOf("report.pdf", "v3"),
		},
	})
	require.Nil(t, failure)
	require.Len(t, view.Documents, 2)
	require.Equal(t, "https://files.test/supporting_documents/project_1/report_1.pdf", view.Documents[0].File)
	require.Equal(t, "https://files.test/supporting_documents/project_1/report_2.pdf", view.Documents[1].File)

	require.Equal(t, []byte("v1"), blobs.objects["supporting_documents/project_1/report.pdf"])
	require.Equal(t, []byte("v2"), blobs.objects["supporting_documents/project_1/report_1.pdf"])
	require.Equal(t, []byte("v3"), blobs.objects["supporting_documents/project_1/report_2.pdf"])
}

func TestSubmitKeysAreNamespacedPerProject(t *testing.T) {
	store := newFakeStore(pendingProject(1), pendingProject(2))
	blobs := newFakeBlobs()

	for _, id := range []uint{1, 2} {
		_, failure := Submit(context.Background(), store, blobs, alice(), SubmitInput{
			ProjectID: id,
			Status:    "completed",
			Files:     []File{fileOf("report.pdf", "x")},
		})
		require.Nil(t, failure)
	}

	// 两个项目各自独立占用 report.pdf，互不追加后缀
	require.Contains(t, blobs.objects, "supporting_documents/project_1/report.pdf")
	require.Contains(t, blobs.objects, "supporting_documents/project_2/report.pdf")
}

func TestConcurrentSubmissionsKeepHistoryAndConverge(t *testing.T) {
	store := newFakeStore(pendingProject(1))
	blobs := newFakeBlobs()

	statuses := []string{"active", "on_hold"}
	failures := make(chan *response.Error, len(statuses))
	var wg sync.WaitGroup
	for _, status := range statuses {
		wg.Add(1)
		go func(status string) {
			defer wg.Done()
			_, failure := Submit(context.Background(), store, blobs, alice(), SubmitInput{
				ProjectID: 1,
				Status:    status,
			})
			failures <- failure
		}(status)
	}
	wg.Wait()
	close(failures)
	for failure := range failures {
		require.Nil(t, failure)
	}

	// 两条历史记录都保留，项目状态等于后提交的那个
	require.Len(t, store.data.updates, 2)
	final := store.project(t, 1).Status
	require.Contains(t, []model.Status{model.StatusInProgress, model.StatusOnHold}, final)
}
