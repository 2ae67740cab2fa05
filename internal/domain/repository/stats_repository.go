package repository

// StoreStats resumen de inventario de una bodega para estadísticas.
type StoreStats struct {
	StoreID       string
	StoreName     string
	ProductCount  int64
	TotalQuantity int64
}

// StatsRepository define el puerto de consultas agregadas (solo lectura).
type StatsRepository interface {
	StatsByCompany(companyID string) ([]*StoreStats, error)
}
