package queue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"recipe-ingest/internal/core/ai/provider"
	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// Request 隊列請求
type Request struct {
	Context context.Context
	Request *provider.Request
	Result  chan Result
}

// Result 處理結果
type Result struct {
	Response *provider.Response
	Error    error
}

// Status 隊列狀態
type Status struct {
	QueueLength    int `json:"queue_length"`
	ProcessedCount int `json:"processed_count"`
	MaxQueueSize   int `json:"max_queue_size"`
	Workers        int `json:"workers"`
}

// Manager 隊列管理器：有界佇列 + 固定數量的 worker，
// 所有對外 AI 呼叫都經過這裡，避免瞬間打爆上游配額
type Manager struct {
	config    *config.Config
	queue     chan *Request
	done      chan struct{}
	processed int64
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewManager 創建隊列管理器
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		config: cfg,
		queue:  make(chan *Request, cfg.Queue.MaxSize),
		done:   make(chan struct{}),
	}
}

// Start 啟動 worker，逐一處理佇列中的請求
func (m *Manager) Start(p provider.Provider) {
	for i := 0; i < m.config.Queue.Workers; i++ {
		m.wg.Add(1)
		go m.worker(p, i)
	}
	common.LogInfo("隊列 worker 已啟動",
		zap.Int("workers", m.config.Queue.Workers),
		zap.Int("max_queue_size", m.config.Queue.MaxSize),
	)
}

// worker 處理迴圈
func (m *Manager) worker(p provider.Provider, id int) {
	defer m.wg.Done()
	for {
		select {
		case <-m.done:
			return
		case req, ok := <-m.queue:
			if !ok {
				return
			}
			resp, err := p.Generate(req.Context, req.Request)
			atomic.AddInt64(&m.processed, 1)
			select {
			case req.Result <- Result{Response: resp, Error: err}:
			case <-req.Context.Done():
				// 呼叫端已放棄，結果直接丟棄
				common.LogDebug("請求已取消，丟棄結果", zap.Int("worker", id))
			}
		}
	}
}

// Enqueue 將請求加入隊列並回傳結果通道
func (m *Manager) Enqueue(ctx context.Context, req *provider.Request) (chan Result, error) {
	// 先判斷是否已關閉：worker 全數退場後，送進緩衝通道的
	// 請求永遠不會被處理，呼叫端會一直等到 context 超時
	select {
	case <-m.done:
		return nil, fmt.Errorf("queue manager is closed")
	default:
	}

	if len(m.queue) >= m.config.Queue.MaxSize {
		return nil, fmt.Errorf("queue is full")
	}

	queueReq := Request{
		Context: ctx,
		Request: req,
		Result:  make(chan Result, 1),
	}

	select {
	case m.queue <- &queueReq:
		common.LogDebug("Request enqueued",
			zap.Int("queue_length", len(m.queue)),
			zap.Int("max_queue_size", m.config.Queue.MaxSize),
		)
		return queueReq.Result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-m.done:
		return nil, fmt.Errorf("queue manager is closed")
	}
}

// GetStatus 獲取隊列狀態
func (m *Manager) GetStatus() *Status {
	return &Status{
		QueueLength:    len(m.queue),
		ProcessedCount: int(atomic.LoadInt64(&m.processed)),
		MaxQueueSize:   m.config.Queue.MaxSize,
		Workers:        m.config.Queue.Workers,
	}
}

// Close 關閉隊列管理器並等待 worker 結束
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		m.wg.Wait()
	})
}
