package conf

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/zeptools/tpcc-core/db/sqldb"
	"github.com/zeptools/tpcc-core/db/sqldb/impls/dsql"
	"github.com/zeptools/tpcc-core/db/sqldb/impls/mysql"
	"github.com/zeptools/tpcc-core/db/sqldb/impls/pgsql"
)

// Core - common app config
type Core struct {
	AppName             string                  `json:"app_name"`
	AppRoot             string                  `json:"-"` // Filled from compiled paths
	RootCtx             context.Context         `json:"-"` // Global Context with RootCancel
	RootCancel          context.CancelFunc      `json:"-"` // CancelFunc for RootCtx
	SQLDBConfs          map[string]*sqldb.Conf  `json:"-"` // loadSQLDBConfs
	BackendSQLDBClients map[string]sqldb.Client `json:"-"` // prepareSQLDBClients
}

// BaseInit - 1st step for initialization
// 1. set AppRoot
// 2. load config/.core.json file
// 3. Start ShutdownSignalListener
func (c *Core) BaseInit(appRoot string, rootCtx context.Context, rootCancel context.CancelFunc) error {
	c.AppRoot = appRoot
	envFilePath := filepath.Join(appRoot, "config", ".core.json")
	envBytes, err := os.ReadFile(envFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(envBytes, c); err != nil {
		return err
	}
	c.RootCtx = rootCtx
	c.RootCancel = rootCancel
	c.startShutdownSignalListener()
	return nil
}

var once sync.Once

func (c *Core) startShutdownSignalListener() {
	once.Do(func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigs
			log.Printf("[INFO] got signal [%s]. shutting down app [%s] ...", sig, c.AppName)
			c.RootCancel() // broadcast to all child services via Context.Done()
		}()
	})
	log.Printf("[INFO][CORE] shutdown signal listener started")
}

func (c *Core) loadSQLDBConfs() error {
	confFilePath := filepath.Join(c.AppRoot, "config", ".sql-databases.json")
	confBytes, err := os.ReadFile(confFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	c.SQLDBConfs = make(map[string]*sqldb.Conf)
	if err = json.Unmarshal(confBytes, &c.SQLDBConfs); err != nil {
		return err
	}
	for name, dbConf := range c.SQLDBConfs {
		if dbConf.Type == dsql.DBType {
			if err = applyDSQLEnvOverrides(name, dbConf); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyDSQLEnvOverrides - DSQL endpoints and regions come from the deployment
// environment, not from checked-in config files
func applyDSQLEnvOverrides(name string, dbConf *sqldb.Conf) error {
	var missing []string
	override := func(envKey string, target *string) {
		if v := os.Getenv(envKey); v != "" {
			*target = v
		} else if *target == "" {
			missing = append(missing, envKey)
		}
	}
	override("DSQL_CLUSTER_ENDPOINT", &dbConf.Host)
	override("AWS_REGION", &dbConf.Region)
	if v := os.Getenv("DSQL_DATABASE"); v != "" {
		dbConf.DB = v
	}
	if v := os.Getenv("DSQL_USERNAME"); v != "" {
		dbConf.User = v
	}
	if len(missing) > 0 {
		return fmt.Errorf("dsql conf %q incomplete, set env var(s): %s",
			name, strings.Join(missing, ", "))
	}
	return nil
}

// prepareSQLDBClients - Build & Init SQL DB Clients
// Use after loadSQLDBConfs
func (c *Core) prepareSQLDBClients() error {
	c.BackendSQLDBClients = make(map[string]sqldb.Client)

	// Registering Supported Implementations
	pgsql.Register()
	dsql.Register()
	mysql.Register()

	// Prepare New Clients
	for dbName, sqlDBConf := range c.SQLDBConfs {
		dbClient, err := sqldb.New(sqlDBConf.Type, sqlDBConf)
		if err != nil {
			return err
		}
		if err = dbClient.Init(); err != nil {
			return err
		}
		c.BackendSQLDBClients[dbName] = dbClient
	}
	return nil
}

// PrepareSQLDatabases for SQL DB Clients & RawSQL Stores, etc
// ensureImports forces linking of packages that register raw sql groups
// via their init()
func (c *Core) PrepareSQLDatabases(ensureImports func()) error {
	// Load SQL Databases Config File
	err := c.loadSQLDBConfs()
	if err != nil {
		return err
	}
	DBTypesSet := make(map[string]struct{})
	for _, dbConf := range c.SQLDBConfs {
		DBTypesSet[dbConf.Type] = struct{}{}
	}
	if len(DBTypesSet) == 0 {
		return nil
	}

	// Prepare SQL DB Clients
	if err = c.prepareSQLDBClients(); err != nil {
		return err
	}

	// Load Raw Statements to Stores
	if ensureImports != nil {
		ensureImports()
	}
	if _, ok := DBTypesSet[mysql.DBType]; ok {
		if err = mysql.LoadRawStmtsToStore(); err != nil {
			return err
		}
	}
	if _, ok := DBTypesSet[pgsql.DBType]; ok {
		if err = pgsql.LoadRawStmtsToStore(); err != nil {
			return err
		}
	}
	if _, ok := DBTypesSet[dsql.DBType]; ok {
		if err = dsql.LoadRawStmtsToStore(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Core) ResourceCleanUp() {
	log.Println("[INFO] App Resource Cleaning Up...")
	for name, sqlDBClient := range c.BackendSQLDBClients {
		dbType := sqlDBClient.GetConf().Type
		log.Printf("[INFO][%s] Closing %q SQL DB client", dbType, name)
		err := sqlDBClient.Close()
		if err != nil {
			log.Printf("[ERROR][%s] Failed to close %q SQL DB client", dbType, name)
		} else {
			log.Printf("[INFO][%s] %q SQL DB client closed", dbType, name)
		}
	}
	log.Println("[INFO] App Resource Cleanup Complete")
}
