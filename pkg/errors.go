// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Error karşılaştırması string yerine referans ile yapılır:
//
//	if errors.Is(err, pkg.ErrForbidden) { ... }
package pkg

import "errors"

// Domain-level error'lar.
// Service katmanı bunları wrap ederek döner, pkg.Error HTTP status'a çevirir.
//
// ErrUnauthorized ile ErrForbidden ayrımı token protokolünün temelidir:
//   - ErrUnauthorized (401): hiç credential sunulmadı ya da login bilgileri yanlış
//   - ErrForbidden (403): credential sunuldu ama imza geçersiz / süresi dolmuş
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)
