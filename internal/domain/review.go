package domain

// ReviewQueue — админская очередь: фильтрованное представление продаж,
// требующих действия. Это только запрос — очередь никогда сама не меняет
// состояние продажи.
type ReviewQueue string

const (
	QueueVerification ReviewQueue = "VERIFICATION" // ждут проверки оплаты
	QueueToShip       ReviewQueue = "TO_SHIP"      // одобрены, ждут отгрузки
	QueueShipped      ReviewQueue = "SHIPPED"      // отгружены или выданы
	QueueAll          ReviewQueue = "ALL"
)

func (q ReviewQueue) Valid() bool {
	switch q {
	case QueueVerification, QueueToShip, QueueShipped, QueueAll:
		return true
	}
	return false
}

// Statuses — какие статусы попадают в очередь; nil — без ограничения.
func (q ReviewQueue) Statuses() []Status {
	switch q {
	case QueueVerification:
		return []Status{StatusPendingApproval}
	case QueueToShip:
		return []Status{StatusApproved}
	case QueueShipped:
		return []Status{StatusShipped, StatusDelivered}
	default:
		return nil
	}
}

// ReviewFilter — очередь плюс вторичные read-side фильтры.
// Month/Year == 0 — фильтр не применяется.
type ReviewFilter struct {
	Queue  ReviewQueue
	Method PaymentMethod // "" — любой способ
	Month  int           // 1..12
	Year   int
}

// Matches — чистый предикат для in-memory реализации хранилища.
func (f ReviewFilter) Matches(s *Sale) bool {
	if sts := f.Queue.Statuses(); sts != nil {
		found := false
		for _, st := range sts {
			if s.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Method != "" && s.PaymentMethod != f.Method {
		return false
	}
	if f.Month != 0 && int(s.CreatedAt.Month()) != f.Month {
		return false
	}
	if f.Year != 0 && s.CreatedAt.Year() != f.Year {
		return false
	}
	return true
}
