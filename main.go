package main

import (
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"backend_fleetmon/config"
	"backend_fleetmon/database"
	"backend_fleetmon/services"
)

func main() {
	// Загружаем переменные окружения из .env файла
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Файл .env не найден, используются системные переменные окружения")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("❌ Ошибка загрузки конфигурации:", err)
	}
	if cfg.App.Debug {
		cfg.LogConfig()
	}

	log.Println("🔧 Инициализация хранилища...")
	db, err := database.Connect(cfg.Storage.Path)
	if err != nil {
		log.Fatal("❌ Ошибка инициализации хранилища:", err)
	}
	if err := database.Seed(db, cfg.Session.DemoPassword); err != nil {
		log.Fatal("❌ Ошибка загрузки демоданных:", err)
	}

	store := database.NewLocalStore(db)

	// Восстанавливаем сессию и корзину из предыдущего запуска
	auth := services.NewAuthService(db, store, cfg.Session)
	cart := services.NewCartService(store, cfg.App.SimulatedLatency)
	if auth.IsAuthenticated() {
		log.Printf("Сессия восстановлена: %s (%s)", auth.CurrentUser().Name, auth.CurrentUser().Role)
	}
	if cart.TotalItems() > 0 {
		log.Printf("Корзина восстановлена: %d позиций на сумму %s", cart.TotalItems(), cart.TotalAmount())
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	monitoring := services.NewMonitoringService(rnd, cfg.Telemetry.RefreshInterval)
	if err := monitoring.Start(); err != nil {
		log.Fatal("❌ Ошибка запуска телеметрии:", err)
	}
	defer monitoring.Stop()

	counts := services.ReadingStatusCounts(monitoring.Readings())
	log.Printf("🚀 Мониторинг автопарка запущен: %d показаний (normal: %d, warning: %d, critical: %d), %d алертов",
		len(monitoring.Readings()), counts["normal"], counts["warning"], counts["critical"], len(monitoring.Alerts()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Завершение работы...")
}
