package app

import (
	"github.com/vk/legcfg/internal/registry"
	"github.com/vk/legcfg/modules/lite3"
	"github.com/vk/legcfg/modules/m20"
	"github.com/vk/legcfg/modules/m20_piper"
)

// coreModules is the definitive list of all robots that are compiled into
// the legcfg binary.
var coreModules = []registry.Module{
	&lite3.Module{},
	&m20.Module{},
	&m20_piper.Module{},
}
