// Package gps ingests NMEA 0183 sentences from a receiver (serial port,
// gpsd relay, raw TCP stream or a capture replay), decodes each line with
// package nmea, folds the results into a fix snapshot and fans every line
// out to sinks such as the UDP forwarder, recorder and MQTT publisher.
package gps
