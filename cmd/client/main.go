package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/common/config"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/common/database"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/common/utils"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/repository"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/service/screen"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/service/session"
)

const (
	projectName = "sbcntr-restaurant-client"
)

func main() {
	os.Exit(run())
}

// run はコマンドを実行して終了コードを返します
// os.Exit より前に遅延処理を済ませるため main から分けています
func run() int {
	// コマンドライン引数のパース
	server := flag.String("server", "", "予約APIの接続先 (例: http://localhost:3000)")
	timeout := flag.Duration("timeout", 0, "コマンドのタイムアウト時間。0の場合は設定値を使う")
	flag.Parse()

	// 設定の読み込み
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v\nStack trace:\n%s", err, debug.Stack())
	}
	if *server != "" {
		if err := cfg.SetBaseURL(*server); err != nil {
			log.Fatalf("Invalid -server flag: %v", err)
		}
	}
	if *timeout > 0 {
		cfg.CommandTimeout = *timeout
	}

	// X-Ray設定
	if cfg.EnableTracing {
		if err := xray.Configure(xray.Config{
			DaemonAddr:     "127.0.0.1:2000", // X-Rayデーモンのアドレス
			ServiceVersion: "1.0.0",
		}); err != nil {
			log.Printf("Failed to configure X-Ray: %v", err)
			// X-Ray設定失敗時はデフォルトの設定を使用
			if configErr := xray.Configure(xray.Config{}); configErr != nil {
				log.Fatalf("Failed to configure default X-Ray settings: %v", configErr)
			}
		}
		os.Setenv("AWS_XRAY_CONTEXT_MISSING", "LOG_ERROR")
	}

	// 端末ストレージの初期化
	db, err := database.NewDB(cfg.DB)
	if err != nil {
		log.Printf("Failed to open storage: %v\nStack trace:\n%s", err, debug.Stack())
		return 1
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// X-Rayセグメントの作成
	command := flag.Arg(0)
	var cmdErr error
	if cfg.EnableTracing {
		var seg *xray.Segment
		ctx, seg = xray.BeginSegment(ctx, projectName)
		defer func() { seg.Close(cmdErr) }()

		if err := seg.AddMetadata("command", command); err != nil {
			log.Printf("Failed to add command metadata: %v", err)
		}
	}

	// セッションの読み込み
	sessions := session.NewManager(repository.NewSessionRepository(repository.NewDB(db)))
	if err := sessions.Init(ctx); err != nil {
		log.Printf("Failed to load session: %v\nStack trace:\n%s", err, debug.Stack())
		cmdErr = err
		return 1
	}

	client := repository.NewAPIClient(cfg.API, sessions, cfg.EnableTracing)
	term := newTerminal(os.Stdin, os.Stdout)
	app := newApp(screen.Deps{
		Session:      sessions,
		Navigator:    term,
		Notifier:     term,
		Confirmer:    term,
		Restaurants:  repository.NewRestaurantRepository(client),
		Reservations: repository.NewReservationRepository(client),
		Users:        repository.NewUserRepository(client),
	}, sessions, term)

	// シグナルハンドリングの設定
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// コマンドの実行
	var args []string
	if flag.NArg() > 1 {
		args = flag.Args()[1:]
	}
	errChan := make(chan error, 1)
	go func() {
		errChan <- utils.RunWithTimeout(ctx, cfg.CommandTimeout, func(ctx context.Context) error {
			return app.run(ctx, command, args)
		})
	}()

	var code int
	code, cmdErr = awaitCommand(sigChan, errChan, cancel, command)
	return code
}

// awaitCommand はシグナルかコマンドの終了を待ち、終了コードとセグメントに記録するエラーを返します
// シグナルを受けた場合は cancel を呼び 130 を返します
func awaitCommand(sigChan <-chan os.Signal, errChan <-chan error, cancel context.CancelFunc, command string) (int, error) {
	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
		cancel()
		return 130, fmt.Errorf("interrupted by %v: %w", sig, context.Canceled)
	case err := <-errChan:
		if err == nil {
			return 0, nil
		}
		if !reported(err) {
			log.Printf("Command %q failed: %v", command, err)
		}
		return 1, err
	}
}

// reported は画面がすでにユーザーへ通知したエラーかどうかを返します
func reported(err error) bool {
	var validationErr *screen.ValidationError
	var actionErr *screen.ActionError
	return errors.As(err, &validationErr) || errors.As(err, &actionErr) || errors.Is(err, screen.ErrNotAuthenticated)
}
