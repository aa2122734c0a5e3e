//go:generate mockgen -source=../sale_repository.go -destination=./mock_sale_repository.go -package=mocks
//go:generate mockgen -source=../stock_ledger.go    -destination=./mock_stock_ledger.go    -package=mocks
//go:generate mockgen -source=../sale_cache.go      -destination=./mock_sale_cache.go      -package=mocks
//go:generate mockgen -source=../validator.go       -destination=./mock_validator.go       -package=mocks
//go:generate mockgen -source=../logger.go          -destination=./mock_logger.go          -package=mocks
//go:generate mockgen -source=../message_consumer.go -destination=./mock_message_consumer.go -package=mocks
//go:generate mockgen -source=../sale_service.go    -destination=./mock_sale_service.go    -package=mocks

package mocks
