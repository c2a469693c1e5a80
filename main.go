package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"entrevista-ai/internal/api"
	"entrevista-ai/internal/config"
	"entrevista-ai/internal/evaluator"
	"entrevista-ai/internal/metrics"
	"entrevista-ai/internal/server"
	"entrevista-ai/internal/speech"
)

func main() {
	fmt.Println("🚀 Iniciando o simulador de entrevistas...")

	// Carrega as variáveis de ambiente; o .env é opcional
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando o ambiente do processo")
	}

	appCfg := config.LoadAppConfig()
	if err := appCfg.OpenAI.Validate(); err != nil {
		log.Fatalf("❌ Configuração do serviço de linguagem inválida: %v", err)
	}

	// Carrega a configuração da entrevista
	cfg, err := config.Load("config/interview.yaml")
	if err != nil {
		log.Fatalf("❌ Erro ao carregar a configuração da entrevista: %v", err)
	}
	log.Println("✅ Configuração carregada")

	// Inicializa os serviços
	m := metrics.NewMetrics()

	client := api.NewClient(
		appCfg.OpenAI.APIKey,
		appCfg.OpenAI.BaseURL,
		appCfg.OpenAI.Model,
		appCfg.OpenAI.MaxTokens,
		appCfg.OpenAI.Temperature,
	)

	offlineMode := !appCfg.OpenAI.IsConfigured()
	if offlineMode {
		log.Println("⚠️ OPENAI_API_KEY ausente: operando em modo offline (avaliação heurística)")
	} else {
		log.Println("✅ Serviço de linguagem configurado")
	}

	evaluatorService := evaluator.New(client, m)
	log.Println("✅ Serviço de avaliação inicializado")

	handler := server.NewHandler(cfg, appCfg.Server, evaluatorService, m, speech.LogSpeaker{}, offlineMode)
	app := server.New(appCfg.Server, handler)
	log.Println("✅ Servidor HTTP inicializado")

	// Informações da configuração
	fmt.Println("\n📋 Configuração:")
	fmt.Printf("• Modo rápido: %d perguntas\n", cfg.Interview.QuickQuestionCount)
	fmt.Printf("• Modo completo: %d perguntas\n", cfg.Interview.CompleteQuestionCount)
	fmt.Printf("• Locale de voz: %s\n", cfg.Speech.Locale)

	// Encerramento gracioso
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Encerrando o servidor...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Encerramento forçado: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%d", appCfg.Server.Port)
	log.Printf("🤖 Servidor ouvindo em %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Erro ao iniciar o servidor: %v", err)
	}
}
