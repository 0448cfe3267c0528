package main

type config struct {
	API struct {
		Port int `yaml:"port"`
	} `yaml:"api"`
	ServiceDiscovery struct {
		Consul struct {
			Address string `yaml:"address"`
		} `yaml:"consul"`
	} `yaml:"serviceDiscovery"`
	Jaeger struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"jaeger"`
	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`
	Redis struct {
		Address string `yaml:"address"`
	} `yaml:"redis"`
	Auth struct {
		Secret string `yaml:"secret"`
	} `yaml:"auth"`
}
