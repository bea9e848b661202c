package enquiry

import "errors"

var (
	// ErrEnquiryNotFound возвращается, когда заявка не найдена
	ErrEnquiryNotFound = errors.New("enquiry.repository: enquiry not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("enquiry.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("enquiry.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("enquiry.repository: failed to scan row")

	// ErrEncodeLogItems возвращается, когда не удалось сериализовать позиции заявки
	ErrEncodeLogItems = errors.New("enquiry.repository: failed to encode log items")
)
