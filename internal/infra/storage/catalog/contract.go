package catalog

import "github.com/m04kA/SMC-SalonScheduler/pkg/txmanager"

// DBExecutor общий интерфейс *sql.DB и *sql.Tx
type DBExecutor = txmanager.DBExecutor
