/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension declares its own configuration type and stores it as a
singleton under the "_c:<package>" key. Configuration is written once from the
genesis file and can later be patched only by the configuration owner.
*/
package gconf
