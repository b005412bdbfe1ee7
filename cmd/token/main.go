// Command token выпускает HS256 токен для изменяющих эндпоинтов API.
// Секрет и срок действия берутся из тех же переменных окружения, что и у сервера
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/aidar/jugador-equipo/internal/config"
	"github.com/aidar/jugador-equipo/internal/service"
)

func main() {
	login := flag.String("login", "admin", "логин, записываемый в sub")
	authorities := flag.String("authorities", service.AuthorityAdmin+","+service.AuthorityUser, "права через запятую")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}
	if !cfg.JWT.Enabled() {
		log.Fatal("JWT_SECRET не задан: авторизация отключена, токен не нужен")
	}

	authService := service.NewAuthService(cfg.JWT.Secret, cfg.JWT.GetExpiration())

	var granted []string
	for _, a := range strings.Split(*authorities, ",") {
		if a = strings.TrimSpace(a); a != "" {
			granted = append(granted, a)
		}
	}

	token, err := authService.IssueToken(*login, granted...)
	if err != nil {
		log.Fatalf("Не удалось выпустить токен: %v", err)
	}

	fmt.Println(token)
}
