package handler

import (
	"net/http"
	"strconv"
)

// Alerts выставляет заголовки X-<app>-alert / X-<app>-params / X-<app>-error,
// по которым клиент показывает уведомления после изменения данных
type Alerts struct {
	appName string
}

// NewAlerts создает Alerts для приложения appName
func NewAlerts(appName string) *Alerts {
	return &Alerts{appName: appName}
}

// AlertHeader возвращает имя заголовка уведомления
func (a *Alerts) AlertHeader() string {
	return "X-" + a.appName + "-alert"
}

// ParamsHeader возвращает имя заголовка с параметром уведомления
func (a *Alerts) ParamsHeader() string {
	return "X-" + a.appName + "-params"
}

// ErrorHeader возвращает имя заголовка ошибки
func (a *Alerts) ErrorHeader() string {
	return "X-" + a.appName + "-error"
}

// Created помечает ответ как создание сущности
func (a *Alerts) Created(w http.ResponseWriter, entity string, id int64) {
	a.set(w, entity+".created", id)
}

// Updated помечает ответ как обновление сущности
func (a *Alerts) Updated(w http.ResponseWriter, entity string, id int64) {
	a.set(w, entity+".updated", id)
}

// Deleted помечает ответ как удаление сущности
func (a *Alerts) Deleted(w http.ResponseWriter, entity string, id int64) {
	a.set(w, entity+".deleted", id)
}

// Failure помечает ответ как отклоненный с ключом ошибки
func (a *Alerts) Failure(w http.ResponseWriter, entity, key string) {
	w.Header().Set(a.ErrorHeader(), "error."+key)
	w.Header().Set(a.ParamsHeader(), entity)
}

func (a *Alerts) set(w http.ResponseWriter, key string, id int64) {
	w.Header().Set(a.AlertHeader(), a.appName+"."+key)
	w.Header().Set(a.ParamsHeader(), strconv.FormatInt(id, 10))
}
