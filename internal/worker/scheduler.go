package worker

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler запускает отложенные переходы по ключу записи.
// Новый Schedule на тот же ключ отменяет предыдущий таймер.
type Scheduler struct {
	logger *zap.Logger
	delay  time.Duration

	mu      sync.Mutex
	seq     uint64
	pending map[string]*job
	stopped bool
	wg      sync.WaitGroup
}

type job struct {
	seq   uint64
	timer *time.Timer
}

func NewScheduler(logger *zap.Logger, delay time.Duration) *Scheduler {
	return &Scheduler{
		logger:  logger,
		delay:   delay,
		pending: map[string]*job{},
	}
}

func (s *Scheduler) Delay() time.Duration {
	return s.delay
}

// Schedule откладывает fn на delay. Возвращает false, если планировщик остановлен.
func (s *Scheduler) Schedule(key string, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return false
	}
	if s.cancelLocked(key) {
		s.logger.Debug("transition superseded", zap.String("key", key))
	}

	s.seq++
	seq := s.seq
	j := &job{seq: seq}
	s.wg.Add(1)
	j.timer = time.AfterFunc(s.delay, func() {
		defer s.wg.Done()

		s.mu.Lock()
		cur, ok := s.pending[key]
		if !ok || cur.seq != seq {
			s.mu.Unlock()
			return
		}
		delete(s.pending, key)
		s.mu.Unlock()

		fn()
	})
	s.pending[key] = j
	return true
}

// Cancel снимает запланированный переход. true - если было что снимать.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked(key)
}

func (s *Scheduler) cancelLocked(key string) bool {
	j, ok := s.pending[key]
	if !ok {
		return false
	}
	delete(s.pending, key)
	if j.timer.Stop() {
		// колбэк уже не запустится, Done за него
		s.wg.Done()
	}
	return true
}

func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	return ok
}

func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop отменяет все ожидающие переходы и ждет уже запущенные.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping transition scheduler...")
	s.mu.Lock()
	s.stopped = true
	for key := range s.pending {
		s.cancelLocked(key)
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Transition scheduler stopped")
}
