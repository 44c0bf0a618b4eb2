package service

import (
	"context"
	"testing"

	"Mivo/engine"
	"Mivo/models"
	"Mivo/pkg/response"
	"Mivo/types"

	"gorm.io/gorm"
)

type fakeDanmuStore struct {
	byID    map[int64]*models.Danmu
	created []*models.Danmu
}

func newFakeDanmuStore() *fakeDanmuStore {
	return &fakeDanmuStore{byID: make(map[int64]*models.Danmu)}
}

func (f *fakeDanmuStore) Create(_ context.Context, d *models.Danmu) error {
	f.byID[d.ID] = d
	f.created = append(f.created, d)
	return nil
}

func (f *fakeDanmuStore) ListForVideo(_ context.Context, videoID int64, sinceID int64) ([]*models.Danmu, error) {
	var out []*models.Danmu
	for _, d := range f.byID {
		if d.VideoID == videoID && !d.Hidden && d.ID > sinceID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDanmuStore) GetByIDAny(_ context.Context, id int64) (*models.Danmu, error) {
	d, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (f *fakeDanmuStore) Hide(_ context.Context, id int64) error {
	if d, ok := f.byID[id]; ok {
		d.Hidden = true
	}
	return nil
}

func (f *fakeDanmuStore) CountByMotion(_ context.Context, videoID int64) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, d := range f.byID {
		if d.VideoID == videoID && !d.Hidden {
			counts[d.Motion]++
		}
	}
	return counts, nil
}

type fakeVideoStore struct{ exists map[int64]bool }

func (f *fakeVideoStore) Exists(_ context.Context, id int64) (bool, error) {
	return f.exists[id], nil
}

type fakeUserStore struct{ moderators map[int64]bool }

func (f *fakeUserStore) IsModerator(_ context.Context, id int64) (bool, error) {
	return f.moderators[id], nil
}

type fakePublisher struct{ events []*types.DanmuEvent }

func (f *fakePublisher) Publish(_ context.Context, ev *types.DanmuEvent) error {
	f.events = append(f.events, ev)
	return nil
}

type fakeStats struct{ counts map[int64]map[string]int64 }

func newFakeStats() *fakeStats {
	return &fakeStats{counts: make(map[int64]map[string]int64)}
}

func (f *fakeStats) bucket(videoID int64) map[string]int64 {
	if f.counts[videoID] == nil {
		f.counts[videoID] = make(map[string]int64)
	}
	return f.counts[videoID]
}

func (f *fakeStats) Incr(_ context.Context, videoID int64, motion string) error {
	f.bucket(videoID)[motion]++
	return nil
}

func (f *fakeStats) Decr(_ context.Context, videoID int64, motion string) error {
	f.bucket(videoID)[motion]--
	return nil
}

func (f *fakeStats) Get(_ context.Context, videoID int64) (map[string]int64, bool, error) {
	c, ok := f.counts[videoID]
	return c, ok, nil
}

func (f *fakeStats) Fill(_ context.Context, videoID int64, counts map[string]int64) error {
	f.counts[videoID] = counts
	return nil
}

func newTestService() (*DanmuService, *fakeDanmuStore, *fakePublisher) {
	store := newFakeDanmuStore()
	pub := &fakePublisher{}
	svc := &DanmuService{
		DanmuDAO:  store,
		VideoDAO:  &fakeVideoStore{exists: map[int64]bool{1: true}},
		UserDAO:   &fakeUserStore{moderators: map[int64]bool{99: true}},
		Publisher: pub,
		Stats:     newFakeStats(),
	}
	return svc, store, pub
}

func TestDanmuService_CreateAndBroadcast(t *testing.T) {
	svc, store, pub := newTestService()

	resp, err := svc.Create(context.Background(), 1, 100, &types.CreateDanmuRequest{
		Text:      "hi",
		Timestamp: 10.0,
		Position:  "scroll",
		Speed:     1.0,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if len(store.created) != 1 {
		t.Fatalf("expected 1 persisted danmu, got %d", len(store.created))
	}
	if len(pub.events) != 1 || pub.events[0].Kind != engine.EventCreated {
		t.Fatalf("expected created event broadcast, got %+v", pub.events)
	}
}

func TestDanmuService_CreateValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name string
		req  types.CreateDanmuRequest
		code int
	}{
		{"empty text", types.CreateDanmuRequest{Text: "  ", Timestamp: 1}, 400},
		{"negative timestamp", types.CreateDanmuRequest{Text: "hi", Timestamp: -0.1}, 400},
		{"bad position", types.CreateDanmuRequest{Text: "hi", Position: "sideways"}, 400},
		{"bad size", types.CreateDanmuRequest{Text: "hi", Size: "huge"}, 400},
		{"negative speed", types.CreateDanmuRequest{Text: "hi", Speed: -1}, 400},
	}

	for _, tc := range cases {
		_, err := svc.Create(ctx, 1, 100, &tc.req)
		be, ok := err.(*response.BizError)
		if !ok || be.Code != tc.code {
			t.Fatalf("%s: expected code %d, got %v", tc.name, tc.code, err)
		}
	}

	// 超长文本
	long := make([]rune, 201)
	for i := range long {
		long[i] = '啊'
	}
	if _, err := svc.Create(ctx, 1, 100, &types.CreateDanmuRequest{Text: string(long)}); err == nil {
		t.Fatal("expected validation error for 201 runes")
	}
}

// 非法颜色落默认色而不是报错
func TestDanmuService_InvalidColorCoerced(t *testing.T) {
	svc, store, _ := newTestService()

	_, err := svc.Create(context.Background(), 1, 100, &types.CreateDanmuRequest{
		Text:  "hi",
		Color: "red",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := store.created[0].Color; got != DefaultColor {
		t.Fatalf("expected default color, got %s", got)
	}

	_, err = svc.Create(context.Background(), 1, 100, &types.CreateDanmuRequest{
		Text:  "hi2",
		Color: "#ff00aa",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := store.created[1].Color; got != "#FF00AA" {
		t.Fatalf("expected normalized color, got %s", got)
	}
}

func TestDanmuService_CreateUnknownVideo(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), 404, 100, &types.CreateDanmuRequest{Text: "hi"})
	be, ok := err.(*response.BizError)
	if !ok || be.Code != 404 {
		t.Fatalf("expected 404 for unknown video, got %v", err)
	}
}

// 隐藏幂等：第二次隐藏同样成功且不再广播
func TestDanmuService_HideIdempotent(t *testing.T) {
	svc, store, pub := newTestService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, 1, 100, &types.CreateDanmuRequest{Text: "hi"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Hide(ctx, resp.ID, 100, false); err != nil {
		t.Fatalf("first hide: %v", err)
	}
	if !store.byID[resp.ID].Hidden {
		t.Fatal("danmu should be hidden")
	}

	if err := svc.Hide(ctx, resp.ID, 100, false); err != nil {
		t.Fatalf("second hide must succeed silently: %v", err)
	}

	hiddenEvents := 0
	for _, ev := range pub.events {
		if ev.Kind == engine.EventHidden {
			hiddenEvents++
		}
	}
	if hiddenEvents != 1 {
		t.Fatalf("expected exactly 1 hidden broadcast, got %d", hiddenEvents)
	}
}

func TestDanmuService_HidePermissions(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, 1, 100, &types.CreateDanmuRequest{Text: "hi"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// 路人不行
	err = svc.Hide(ctx, resp.ID, 200, false)
	be, ok := err.(*response.BizError)
	if !ok || be.Code != 403 {
		t.Fatalf("expected 403 for stranger, got %v", err)
	}

	// 管理员可以
	if err := svc.Hide(ctx, resp.ID, 99, false); err != nil {
		t.Fatalf("moderator hide: %v", err)
	}
}

func TestDanmuService_HideUnknown(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Hide(context.Background(), 12345, 100, false)
	be, ok := err.(*response.BizError)
	if !ok || be.Code != 404 {
		t.Fatalf("expected 404 for unknown danmu, got %v", err)
	}
}

// 隐藏的弹幕从列表里消失
func TestDanmuService_ListExcludesHidden(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	r1, _ := svc.Create(ctx, 1, 100, &types.CreateDanmuRequest{Text: "a", Timestamp: 1})
	r2, _ := svc.Create(ctx, 1, 100, &types.CreateDanmuRequest{Text: "b", Timestamp: 2})

	if err := svc.Hide(ctx, r1.ID, 100, false); err != nil {
		t.Fatalf("hide: %v", err)
	}

	list, err := svc.List(ctx, 1, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Danmus) != 1 || list.Danmus[0].ID != r2.ID {
		t.Fatalf("expected only visible danmu %d, got %+v", r2.ID, list.Danmus)
	}
	if list.LastID != r2.ID {
		t.Fatalf("expected last id %d, got %d", r2.ID, list.LastID)
	}
}

func TestDanmuService_StatsFallbackToStore(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	svc.Create(ctx, 1, 100, &types.CreateDanmuRequest{Text: "a", Position: "scroll"})
	svc.Create(ctx, 1, 100, &types.CreateDanmuRequest{Text: "b", Position: "top"})

	// 清掉缓存，强制回源
	svc.Stats = newFakeStats()

	stats, err := svc.GetStats(ctx, 1)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 2 || stats.Scroll != 1 || stats.Top != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
