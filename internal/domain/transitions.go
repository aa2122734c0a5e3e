package domain

import "time"

// Имена переходов — используются в ошибках и метриках.
const (
	TrSubmitPayment  = "submitPayment"
	TrConfirmGateway = "confirmGatewayPayment"
	TrChangeMethod   = "changePaymentMethod"
	TrApprove        = "approve"
	TrReject         = "reject"
	TrDispatch       = "dispatch"
	TrMarkDelivered  = "markDelivered"
	TrCancel         = "cancel"
)

// Каждый переход: проверка роли → проверка статуса → предусловия → эффект.
// При любой ошибке агрегат остаётся нетронутым (никаких частичных мутаций).

// SubmitPayment — покупатель подтверждает оплату.
// TRANSFER/CRYPTO требуют подтверждение (квитанцию), CASH — нет:
// для наличных это фактически подтверждение брони самовывоза,
// проверка происходит физически при выдаче.
func (s *Sale) SubmitPayment(role ActorRole, reference string) error {
	if role != RoleCustomer {
		return &ValidationError{Field: "actor_role", Reason: "only the customer submits payment"}
	}
	if s.Status != StatusPendingPayment {
		return newInvalidTransition(s.Status, TrSubmitPayment)
	}
	if s.PaymentMethod != MethodCash && reference == "" {
		return &ValidationError{Field: "evidence", Reason: "payment evidence is required"}
	}

	if s.PaymentMethod != MethodCash {
		kind := EvidenceReceipt
		if s.PaymentMethod == MethodGateway {
			kind = EvidenceGateway
		}
		s.Evidence = &Evidence{Kind: kind, Reference: reference, AddedAt: time.Now().UTC()}
	}
	s.setStatus(StatusPendingApproval)
	return nil
}

// ConfirmGatewayPayment — асинхронное подтверждение от платёжного шлюза
// (redirect-return или webhook). Роль не проверяется: источник — не
// пользователь, а внешняя система. Подтверждение может прийти сколь
// угодно поздно — до его прихода продажа остаётся в PENDING_PAYMENT.
func (s *Sale) ConfirmGatewayPayment(transactionRef string) error {
	if s.Status != StatusPendingPayment {
		return newInvalidTransition(s.Status, TrConfirmGateway)
	}
	if s.PaymentMethod != MethodGateway {
		return &ValidationError{Field: "payment_method", Reason: "not a gateway sale"}
	}
	if transactionRef == "" {
		return &ValidationError{Field: "transaction", Reason: "required"}
	}

	s.Evidence = &Evidence{Kind: EvidenceGateway, Reference: transactionRef, AddedAt: time.Now().UTC()}
	s.setStatus(StatusPendingApproval)
	return nil
}

// ChangePaymentMethod — смена способа оплаты. Легальна только до ухода из
// PENDING_PAYMENT; заново проверяет сочетание с типом доставки.
// Повисшее (так и не отправленное) подтверждение сбрасывается.
func (s *Sale) ChangePaymentMethod(role ActorRole, next PaymentMethod) error {
	if role != RoleCustomer {
		return &ValidationError{Field: "actor_role", Reason: "only the customer changes the payment method"}
	}
	if s.Status != StatusPendingPayment {
		return newInvalidTransition(s.Status, TrChangeMethod)
	}
	if !next.Valid() {
		return &ValidationError{Field: "payment_method", Reason: "unknown payment method"}
	}
	if !next.LegalFor(s.DeliveryType) {
		return &ValidationError{Field: "payment_method", Reason: "cash is not allowed for shipped sales"}
	}

	s.PaymentMethod = next
	s.Evidence = nil
	s.touch()
	return nil
}

// Approve — администратор подтверждает оплату.
func (s *Sale) Approve(role ActorRole) error {
	if role != RoleAdmin {
		return &ValidationError{Field: "actor_role", Reason: "admin action"}
	}
	if s.Status != StatusPendingApproval {
		return newInvalidTransition(s.Status, TrApprove)
	}
	s.setStatus(StatusApproved)
	return nil
}

// Reject — администратор отклоняет оплату; резерв возвращается на склад
// (возврат выполняет хранилище в той же транзакции, см. ReleasesStock).
func (s *Sale) Reject(role ActorRole) error {
	if role != RoleAdmin {
		return &ValidationError{Field: "actor_role", Reason: "admin action"}
	}
	if s.Status != StatusPendingApproval {
		return newInvalidTransition(s.Status, TrReject)
	}
	s.setStatus(StatusRejected)
	return nil
}

// Dispatch — отгрузка подтверждённой продажи.
// SHIP: обязателен непустой код трекинга → SHIPPED.
// PICKUP: обязательно явное подтверждение оператора, кода нет; выдача в
// магазине — атомарное событие, поэтому статус SHIPPED пропускается и
// продажа сразу становится DELIVERED с маркером PickupMarker.
func (s *Sale) Dispatch(role ActorRole, trackingCode string, pickupConfirmed bool) error {
	if role != RoleAdmin {
		return &ValidationError{Field: "actor_role", Reason: "admin action"}
	}
	if s.Status != StatusApproved {
		return newInvalidTransition(s.Status, TrDispatch)
	}

	switch s.DeliveryType {
	case DeliveryShip:
		if trackingCode == "" {
			return &ValidationError{Field: "tracking_code", Reason: "required for shipped sales"}
		}
		s.TrackingCode = trackingCode
		s.setStatus(StatusShipped)
	case DeliveryPickup:
		if !pickupConfirmed {
			return &ValidationError{Field: "pickup_confirmed", Reason: "operator confirmation is required"}
		}
		s.TrackingCode = PickupMarker
		s.setStatus(StatusDelivered)
	}
	return nil
}

// MarkDelivered — подтверждение доставки перевозчиком/администратором.
func (s *Sale) MarkDelivered(role ActorRole) error {
	if role != RoleAdmin {
		return &ValidationError{Field: "actor_role", Reason: "admin action"}
	}
	if s.Status != StatusShipped {
		return newInvalidTransition(s.Status, TrMarkDelivered)
	}
	s.setStatus(StatusDelivered)
	return nil
}

// Cancel — отмена покупателем или администратором. Легальна только в двух
// ранних статусах: после APPROVED остаток уже закреплён за продажей и
// отмена возможна лишь через процесс возврата (вне этого ядра).
func (s *Sale) Cancel(role ActorRole) error {
	if role != RoleCustomer && role != RoleAdmin {
		return &ValidationError{Field: "actor_role", Reason: "unknown actor role"}
	}
	if s.Status != StatusPendingPayment && s.Status != StatusPendingApproval {
		return newInvalidTransition(s.Status, TrCancel)
	}
	s.setStatus(StatusCancelled)
	return nil
}

func (s *Sale) setStatus(next Status) {
	s.Status = next
	s.touch()
}

func (s *Sale) touch() {
	s.UpdatedAt = time.Now().UTC()
}
