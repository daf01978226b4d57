package main

import (
	"flag"

	"etkinlik.link/configs"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/database"
)

func main() {
	configslog.InitLogger()
	defer configslog.Sync()
	migrateFlag := flag.Bool("migrate", false, "Veritabanı başlatma işlemini çalıştır (migrasyonları içerir)")
	seedFlag := flag.Bool("seed", false, "Veritabanı başlatma işlemini çalıştır (seederları içerir)")
	flag.Parse()

	configs.LoadEnv()
	db := configs.ConnectDB()
	defer configs.CloseDB()

	configslog.SLog.Info("Veritabanı başlatma işlemi çalıştırılıyor...")
	database.Initialize(db, *migrateFlag, *seedFlag)

	configslog.SLog.Info("Veritabanı başlatma işlemi tamamlandı.")
}
